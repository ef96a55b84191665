package seed

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/internal/errors"
	"usersvc/internal/model"
)

const seedJSON = `[
	{"name": "Sarah Jenkins", "email": "sarah@x.com", "age": 25},
	{"name": "Tom Hardy", "email": "tom@x.com", "age": 41}
]`

type structValidator struct{ v *validator.Validate }

func (s structValidator) Validate(i interface{}) error { return s.v.Struct(i) }

// fakeService stores users by email; only CreateUser is exercised.
type fakeService struct {
	byEmail map[string]bool
	failOn  string
}

func (f *fakeService) CreateUser(_ context.Context, req model.UserRequest) (*model.UserResponse, error) {
	if req.Email == f.failOn {
		return nil, stderrors.New("db down")
	}
	if f.byEmail[req.Email] {
		return nil, errors.EmailAlreadyExists(req.Email)
	}
	f.byEmail[req.Email] = true
	return &model.UserResponse{Name: req.Name, Email: req.Email, Age: *req.Age}, nil
}

func (f *fakeService) ListUsers(context.Context) ([]model.UserResponse, error) { return nil, nil }
func (f *fakeService) GetUser(context.Context, uint) (*model.UserResponse, error) {
	return nil, nil
}
func (f *fakeService) GetUserByEmail(context.Context, string) (*model.UserResponse, error) {
	return nil, nil
}
func (f *fakeService) UpdateUser(context.Context, uint, model.UserRequest) (*model.UserResponse, error) {
	return nil, nil
}
func (f *fakeService) DeleteUser(context.Context, uint) error { return nil }

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))

	records, err := Fetch(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Sarah Jenkins", records[0].Name)
	assert.Equal(t, 41, *records[1].Age)
}

func TestFetch_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(seedJSON))
	}))
	defer srv.Close()

	records, err := Fetch(context.Background(), srv.URL+"/users.json")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = Fetch(context.Background(), srv.URL+"/missing.json")
	assert.ErrorContains(t, err, "status code 404")
}

func TestFetch_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o600))

	_, err := Fetch(context.Background(), path)

	assert.ErrorContains(t, err, "parse JSON")
}

func TestRun(t *testing.T) {
	age := 30
	records := []model.UserRequest{
		{Name: "Sarah Jenkins", Email: "sarah@x.com", Age: &age},
		{Name: "Existing", Email: "existing@x.com", Age: &age},
		{Name: "", Email: "noname@x.com", Age: &age},
		{Name: "Sarah Again", Email: "sarah@x.com", Age: &age},
	}
	svc := &fakeService{byEmail: map[string]bool{"existing@x.com": true}}

	res, err := Run(context.Background(), svc, structValidator{validator.New()}, records)

	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1, Skipped: 2, Invalid: 1}, res)
}

func TestRun_StopsOnStorageFailure(t *testing.T) {
	age := 30
	records := []model.UserRequest{
		{Name: "A", Email: "a@x.com", Age: &age},
		{Name: "B", Email: "b@x.com", Age: &age},
		{Name: "C", Email: "c@x.com", Age: &age},
	}
	svc := &fakeService{byEmail: map[string]bool{}, failOn: "b@x.com"}

	res, err := Run(context.Background(), svc, structValidator{validator.New()}, records)

	assert.ErrorContains(t, err, "create user b@x.com")
	assert.Equal(t, 1, res.Created)
}
