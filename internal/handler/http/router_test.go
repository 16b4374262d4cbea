package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/domain/report"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/jwt"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/metrics"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/sse"
	authService "github.com/shift-report/shift-report-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessCode = "let-me-in"
)

type fakeShiftService struct {
	submitted []shift.SubmitReportRequest
	deleted   int64
}

func (f *fakeShiftService) Submit(ctx context.Context, req shift.SubmitReportRequest) (shift.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ReportResponse{}, err
	}
	f.submitted = append(f.submitted, req)
	return shift.ReportResponse{ID: "r-1", ReportType: req.ReportType, PersonalID: req.PersonalID}, nil
}

func (f *fakeShiftService) List(ctx context.Context, filter shift.ReportFilter) ([]shift.ReportResponse, error) {
	return []shift.ReportResponse{}, nil
}

func (f *fakeShiftService) Reset(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, shift.ErrConfirmationRequired
	}
	return f.deleted, nil
}

type fakeLocationService struct{}

func (f *fakeLocationService) Report(ctx context.Context, req location.ReportLocationRequest) (location.Ping, error) {
	if err := req.Validate(); err != nil {
		return location.Ping{}, err
	}
	return location.Ping{PersonalID: req.PersonalID, CurrentLocation: req.CurrentLocation, OnShift: *req.OnShift}, nil
}

func (f *fakeLocationService) List(ctx context.Context) ([]location.Ping, error) {
	return []location.Ping{}, nil
}

func (f *fakeLocationService) Reset(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, location.ErrConfirmationRequired
	}
	return 3, nil
}

func (f *fakeLocationService) PruneOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	return 0, nil
}

type fakePersonnelService struct{}

func (f *fakePersonnelService) Lookup(ctx context.Context, personalID string) (personnel.Person, error) {
	if personalID == "100" {
		return personnel.Person{PersonalID: "100", FullName: "Dana Levi", Active: true}, nil
	}
	return personnel.Person{}, personnel.ErrPersonNotFound
}

func (f *fakePersonnelService) List(ctx context.Context, activeOnly bool) ([]personnel.Person, error) {
	return []personnel.Person{}, nil
}

func (f *fakePersonnelService) ListCommanders(ctx context.Context) ([]personnel.CommanderResponse, error) {
	return []personnel.CommanderResponse{{PersonalID: "1", FullName: "Yael Mor"}}, nil
}

func (f *fakePersonnelService) ImportRoster(ctx context.Context, r io.Reader) (personnel.ImportResult, error) {
	body, _ := io.ReadAll(r)
	if len(bytes.TrimSpace(body)) == 0 {
		return personnel.ImportResult{}, personnel.ErrEmptyRoster
	}
	return personnel.ImportResult{Imported: 1}, nil
}

type fakeReportService struct{}

func (f *fakeReportService) WeeklyHours(ctx context.Context, req report.WeekRequest) (report.WeeklyHoursReport, error) {
	window, err := req.Resolve(time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), time.UTC)
	if err != nil {
		return report.WeeklyHoursReport{}, err
	}
	return report.WeeklyHoursReport{
		WeekStart: window.Start.Format(shift.DateLayout),
		WeekEnd:   window.End.Format(shift.DateLayout),
		Rows:      []shift.WeeklySummary{},
	}, nil
}

func (f *fakeReportService) PersonDailyDetail(ctx context.Context, personalID string, req report.WeekRequest) (report.PersonDetailReport, error) {
	return report.PersonDetailReport{}, personnel.ErrPersonNotFound
}

func (f *fakeReportService) ExportWeeklyHours(ctx context.Context, req report.WeekRequest) (report.ExportFile, error) {
	return report.ExportFile{
		Filename:    "weekly_hours_2024-03-10.xlsx",
		ContentType: report.XLSXContentType,
		Content:     []byte("PK"),
	}, nil
}

func (f *fakeReportService) PresenceOverview(ctx context.Context) (report.PresenceReport, error) {
	return report.PresenceReport{}, nil
}

type testServer struct {
	router     http.Handler
	jwtService jwt.Service
	hub        *sse.Hub
	shifts     *fakeShiftService
	metrics    *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestAccessCode), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	hub := sse.NewHub(8)
	m := metrics.New()
	shifts := &fakeShiftService{deleted: 7}

	router := NewRouter(jwtService, m, RouterOptions{Env: "test", Version: "test"}, Handlers{
		Auth:      NewAuthHandler(authService.NewAuthService(jwtService, string(hash))),
		Shift:     NewShiftHandler(shifts),
		Location:  NewLocationHandler(&fakeLocationService{}),
		Personnel: NewPersonnelHandler(&fakePersonnelService{}),
		Report:    NewReportHandler(&fakeReportService{}),
		Events:    NewEventsHandler(hub, jwtService, time.Hour),
	})

	return &testServer{router: router, jwtService: jwtService, hub: hub, shifts: shifts, metrics: m}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/supervisor", "", map[string]string{"access_code": handlerTestAccessCode})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			Role        string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)
	assert.Equal(t, "supervisor", body.Data.Role)
	return body.Data.AccessToken
}

type envelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSubmitShiftReport(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/shift-reports", "", map[string]interface{}{
		"report_type":    "entry",
		"personal_id":    "100",
		"unit_commander": "Yael Mor",
		"work_location":  "Gate 4",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
	assert.Len(t, s.shifts.submitted, 1)
}

func TestSubmitShiftReport_ValidationError(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/shift-reports", "", map[string]interface{}{
		"report_type":    "exit",
		"personal_id":    "100",
		"unit_commander": "Yael Mor",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "reports_count")
}

func TestSubmitShiftReport_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/shift-reports", "", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocationPing(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/location-pings", "", map[string]interface{}{
		"personal_id":      "100",
		"current_location": "Gate 4",
		"on_shift":         false,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/location-pings", "", map[string]interface{}{
		"personal_id":      "100",
		"current_location": "Gate 4",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error.Details, "on_shift")
}

func TestPersonnelLookup(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/personnel/100", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dana Levi")

	rec = s.do(t, http.MethodGet, "/api/v1/personnel/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/personnel/commanders", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Yael Mor")
}

func TestSupervisorLogin_WrongCode(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/supervisor", "", map[string]string{"access_code": "nope"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RequireSupervisor(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/reports/weekly", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	otherRole, _, err := s.jwtService.GenerateAccessToken("someone", "reporter")
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/v1/admin/reports/weekly", otherRole, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	streamToken, _, err := s.jwtService.GenerateSSEToken("supervisor")
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/v1/admin/reports/weekly", streamToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWeeklyReport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/reports/weekly?week_start=2024-03-03", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data report.WeeklyHoursReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-03", body.Data.WeekStart)
	assert.Equal(t, "2024-03-09", body.Data.WeekEnd)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/reports/weekly?week_start=March", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/reports/weekly/555", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeeklyExport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/reports/weekly/export", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="weekly_hours_2024-03-10.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}

func TestResets_RequireConfirmation(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodDelete, "/api/v1/admin/shift-reports", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error.Details, "confirm")

	rec = s.do(t, http.MethodDelete, "/api/v1/admin/shift-reports?confirm=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":7`)

	rec = s.do(t, http.MethodDelete, "/api/v1/admin/location-pings", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/admin/location-pings?confirm=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":3`)
}

func TestRosterImport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/personnel/roster", token, "personnel:\n  - personal_id: \"1\"\n    full_name: A\n")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/personnel/roster", token, "  ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_RevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/presence", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/v1/personnel/100", "", nil)

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shift_report_http_requests_total{method="GET",route="/api/v1/personnel/{personal_id}",status="200"} 1`)
}

func TestEventStream(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	server := httptest.NewServer(s.router)
	defer server.Close()

	rec := s.do(t, http.MethodGet, "/api/v1/admin/events/token", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tokenBody struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenBody))

	resp, err := http.Get(server.URL + "/api/v1/events/stream?token=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events/stream?token="+tokenBody.Data.Token, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		for strings.TrimSpace(line) == "" {
			line, err = reader.ReadString('\n')
			require.NoError(t, err)
		}
		return strings.TrimSpace(line)
	}

	assert.Equal(t, "event: connected", readEvent())
	readEvent() // data line

	s.hub.Publish(sse.TopicSupervisors, sse.Event{Event: sse.EventReportSubmitted, Data: map[string]string{"id": "r-1"}})

	assert.Equal(t, "event: report_submitted", readEvent())
	assert.Equal(t, `data: {"id":"r-1"}`, readEvent())
}
