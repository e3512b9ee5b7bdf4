package intakehttp_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	verificationapp "gitlab.com/nestar/idverify-backend/internal/application/verification"
	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	intakehttp "gitlab.com/nestar/idverify-backend/internal/ports/http/intake"
	"gitlab.com/nestar/idverify-backend/pkg/httpx"
	"gitlab.com/nestar/idverify-backend/tests/builders"
	"gitlab.com/nestar/idverify-backend/tests/mocks"
)

const registrationFormID int64 = 1321

type intakeFixture struct {
	router  chi.Router
	repo    *mocks.AccountRepo
	gateway *mocks.SessionGateway
}

func newIntakeFixture() *intakeFixture {
	repo := mocks.NewAccountRepo()
	gateway := mocks.NewSessionGateway()

	app := verificationapp.NewApp(verificationapp.Args{
		AccountRepo:   repo,
		Gateway:       gateway,
		DocumentStore: mocks.NewDocumentStore(),
		ReturnURL:     "http://localhost:8080/v1/verification/complete",
	})

	h := intakehttp.NewHTTP(intakehttp.Args{
		App:        app,
		Errhandler: httpx.NewErrorHandler(),
		FormID:     registrationFormID,
	})

	router := chi.NewRouter()
	h.Route(router)

	return &intakeFixture{router: router, repo: repo, gateway: gateway}
}

func (f *intakeFixture) seedPendingAccount(t *testing.T, email string) {
	t.Helper()
	f.repo.SeedAccount(t, builders.NewAccountBuilder().WithEmail(email).Build())
}

func (f *intakeFixture) postEntry(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/forms/entry-saved", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func entryBody(formID int64, success bool, email, role, method string) string {
	return fmt.Sprintf(`{
		"form_id": %d,
		"success": %t,
		"fields": [
			{"name": "email", "value": %q},
			{"name": "role-selector", "value": %q},
			{"name": "verification-method-selector", "value": %q},
			{"name": "consent-checkbox", "value": "yes"}
		]
	}`, formID, success, email, role, method)
}

func TestEntrySaved_DocumentMethodRedirects(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()
	f.seedPendingAccount(t, "applicant@example.com")

	rec := f.postEntry(t, entryBody(registrationFormID, true, "applicant@example.com", "student", "document"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "https://verify.example.com/vs_mock_1")
	f.repo.AssertAccountStatus(t, "applicant@example.com", account.StatusAwaitingVerification)
}

func TestEntrySaved_UnrelatedFormIgnored(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()
	f.seedPendingAccount(t, "applicant@example.com")

	rec := f.postEntry(t, entryBody(99, true, "applicant@example.com", "student", "document"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ignored"`)
	f.repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}

func TestEntrySaved_UnsuccessfulEntryIgnored(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()
	f.seedPendingAccount(t, "applicant@example.com")

	rec := f.postEntry(t, entryBody(registrationFormID, false, "applicant@example.com", "student", "document"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ignored"`)
	f.repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}

func TestEntrySaved_NoMethodParksAccount(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()
	f.seedPendingAccount(t, "applicant@example.com")

	rec := f.postEntry(t, entryBody(registrationFormID, true, "applicant@example.com", "student", ""))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	f.repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}

func TestEntrySaved_ResubmitResetsApprovedAccount(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()
	f.repo.SeedAccount(t, builders.NewAccountBuilder().
		WithEmail("applicant@example.com").
		WithStatus(account.StatusApproved).
		Build())

	rec := f.postEntry(t, entryBody(registrationFormID, true, "applicant@example.com", "staff", ""))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	f.repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
	assert.Equal(t, "staff", f.repo.Account(t, "applicant@example.com").Role())
}

func TestEntrySaved_UnknownAccount(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()

	rec := f.postEntry(t, entryBody(registrationFormID, true, "ghost@example.com", "student", "document"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntrySaved_UnknownPayloadKeysTolerated(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()
	f.seedPendingAccount(t, "applicant@example.com")

	body := fmt.Sprintf(`{
		"form_id": %d,
		"success": true,
		"entry_id": 4207,
		"submitted_at": "2026-08-29T10:00:00Z",
		"fields": [
			{"name": "email", "value": "applicant@example.com"},
			{"name": "verification-method-selector", "value": ""}
		]
	}`, registrationFormID)
	rec := f.postEntry(t, body)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	f.repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}

func TestEntrySaved_MalformedJSON(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()

	rec := f.postEntry(t, `{"form_id": 1321,`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntrySaved_InvalidEmail(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()

	rec := f.postEntry(t, entryBody(registrationFormID, true, "not-an-email", "student", "document"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.repo.AssertAccountNotExists(t, "not-an-email")
}

func TestEntrySaved_GatewayFailure(t *testing.T) {
	t.Parallel()

	f := newIntakeFixture()
	f.seedPendingAccount(t, "applicant@example.com")
	f.gateway.CreateErr = assert.AnError

	rec := f.postEntry(t, entryBody(registrationFormID, true, "applicant@example.com", "student", "document"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// the account is parked before the gateway call, so the reset survives
	f.repo.AssertAccountStatus(t, "applicant@example.com", account.StatusPendingReview)
}
