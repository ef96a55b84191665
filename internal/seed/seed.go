package seed

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"usersvc/internal/errors"
	"usersvc/internal/model"
	"usersvc/internal/service"
)

// Validator checks a single record before it is stored.
type Validator interface {
	Validate(i interface{}) error
}

// Result counts what happened to each record.
type Result struct {
	Created int
	Skipped int
	Invalid int
}

// Fetch reads user records from a JSON array at an http(s) URL or a local file path.
func Fetch(ctx context.Context, source string) ([]model.UserRequest, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetchURL(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var records []model.UserRequest
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return records, nil
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// Run creates every valid record through the user service.
// Records whose email is already stored are skipped.
func Run(ctx context.Context, svc service.UserService, v Validator, records []model.UserRequest) (Result, error) {
	var res Result
	for i, rec := range records {
		if err := v.Validate(&rec); err != nil {
			log.Printf("Skipping record %d (%s): %v", i, rec.Email, err)
			res.Invalid++
			continue
		}

		if _, err := svc.CreateUser(ctx, rec); err != nil {
			if stderrors.Is(err, errors.ErrEmailAlreadyExists) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("create user %s: %w", rec.Email, err)
		}
		res.Created++
	}
	return res, nil
}
