package api

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"net/http"
	"strconv"
	"strings"
)

var ErrInvalidParams = errors.New("invalid query parameters")

type Params struct {
	Limit int `validate:"gte=1,lte=100"`
}

type paramsParser struct {
	validate *validator.Validate
}

func newParamsParser() *paramsParser {
	return &paramsParser{validate: validator.New()}
}

// parse reads the limit of reports that accept one. Missing, empty and zero values
// fall back to the report default.
func (p *paramsParser) parse(r *http.Request, report Report) (Params, error) {
	params := Params{Limit: report.DefaultLimit}
	if report.DefaultLimit == 0 {
		return params, nil
	}

	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return params, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return params, errors.Wrapf(ErrInvalidParams, "limit %q is not an integer", raw)
	}
	if limit == 0 {
		return params, nil
	}

	params.Limit = limit
	if err := p.validate.Struct(params); err != nil {
		return params, errors.Wrap(ErrInvalidParams, "limit must be between 1 and 100")
	}
	return params, nil
}

func (p Params) cacheKey(report Report) string {
	if report.DefaultLimit == 0 {
		return report.Name
	}
	return fmt.Sprintf("%s?limit=%d", report.Name, p.Limit)
}
