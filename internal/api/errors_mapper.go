package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	statusErr := &StatusError{Code: resp.StatusCode(), Body: body}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w", ErrBadRequest, statusErr)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, statusErr)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrForbidden, statusErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, statusErr)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w", ErrConflict, statusErr)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %w", ErrBadGateway, statusErr)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %w", ErrInternalServerError, statusErr)
	default:
		return statusErr
	}
}
