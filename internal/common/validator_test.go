package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	Index int    `param:"index" validate:"min=0"`
	Color string `query:"color" validate:"omitempty,hexadecimal"`
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		index      string
		query      string
		wantStatus int
	}{
		{name: "valid", index: "3", query: "color=ff00aa"},
		{name: "negative index", index: "-1", wantStatus: http.StatusBadRequest},
		{name: "not a number", index: "x", wantStatus: http.StatusBadRequest},
		{name: "bad colour", index: "1", query: "color=zz", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Validator = &GenericEchoValidator{}
			req := httptest.NewRequest(http.MethodGet, "/asset/"+tt.index+"?"+tt.query, nil)
			ctx := e.NewContext(req, httptest.NewRecorder())
			ctx.SetParamNames("index")
			ctx.SetParamValues(tt.index)

			var got sampleRequest
			err := BindAndValidate(ctx, &got)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Color != "ff00aa" {
					t.Errorf("Color = %q", got.Color)
				}
				return
			}
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != tt.wantStatus {
				t.Fatalf("error = %v, want status %d", err, tt.wantStatus)
			}
		})
	}
}

func TestGenericEchoValidator_Concurrent(t *testing.T) {
	validators := map[string]*GenericEchoValidator{
		"constructed": NewGenericEchoValidator(),
		"zero value":  {},
	}
	for name, gv := range validators {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errs := make(chan error, 32)
			for i := 0; i < 16; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					errs <- gv.Validate(&sampleRequest{Index: 1, Color: "ff00aa"})
				}()
				go func() {
					defer wg.Done()
					if err := gv.Validate(&sampleRequest{Index: -1}); err == nil {
						errs <- errors.New("expected a negative index to be rejected")
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				if err != nil {
					t.Error(err)
				}
			}
			if name == "zero value" && gv.Validator != nil {
				t.Error("Validate should not assign a validator to a zero value")
			}
		})
	}
}
