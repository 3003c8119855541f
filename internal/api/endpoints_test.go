package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocdesk/internal/domain"
)

func TestListUsecases_ScopeParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/usecases", r.URL.Path)
		assert.Equal(t, "EMP001", r.URL.Query().Get("employeeId"))
		assert.Equal(t, "all", r.URL.Query().Get("scope"))
		w.Write([]byte(`[{"id":"u1","companyName":"Acme","status":"Ongoing"}]`))
	}))
	defer srv.Close()

	records, err := testClient(srv.URL).ListUsecases(context.Background(), "EMP001", true)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].CompanyName)
	assert.Equal(t, domain.UsecaseOngoing, records[0].Status)
}

func TestListUsecases_OwnScopeOmitsParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("scope"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListUsecases(context.Background(), "EMP001", false)
	require.NoError(t, err)
}

func TestCreateUsecase_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireUsecase
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Acme", req.CompanyName)
		assert.Equal(t, "Partner", req.CustomerType)
		assert.Equal(t, "Channel Co", req.PartnerName)

		req.ID = "server-id"
		req.Status = "Initiated"
		req.CreatedAt = "2026-08-29T10:00:00Z"
		json.NewEncoder(w).Encode(req)
	}))
	defer srv.Close()

	created, err := testClient(srv.URL).CreateUsecase(context.Background(), &domain.UsecaseRecord{
		CompanyName:  "Acme",
		CustomerType: domain.CustomerPartner,
		PartnerName:  "Channel Co",
	})
	require.NoError(t, err)
	assert.Equal(t, "server-id", created.ID)
	assert.Equal(t, domain.UsecaseInitiated, created.Status)
	assert.Equal(t, 2026, created.CreatedAt.Year())
}

func TestProjectCode_ListJoinsSplit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","code":"POC-0042","name":"Rollout","assignedTo":"EMP001,EMP002","tags":"ml,priority","startDate":"2026-08-01"}]`))
	}))
	defer srv.Close()

	codes, err := testClient(srv.URL).ListProjectCodes(context.Background())
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "POC-0042", codes[0].Code)
	assert.Equal(t, []string{"EMP001", "EMP002"}, codes[0].AssignedTo)
	assert.Equal(t, []string{"ml", "priority"}, codes[0].Tags)
	require.NotNil(t, codes[0].StartDate)
	assert.Equal(t, "2026-08-01", codes[0].StartDate.Format("2006-01-02"))
}

func TestProjectCode_CreateJoinsLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireProjectCode
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "EMP001,EMP002", req.AssignedTo)
		assert.Equal(t, "ml,priority", req.Tags)
		assert.Empty(t, req.Code)

		req.ID = "p1"
		req.Code = "POC-0001"
		json.NewEncoder(w).Encode(req)
	}))
	defer srv.Close()

	created, err := testClient(srv.URL).CreateProjectCode(context.Background(), &domain.ProjectCode{
		Name:       "Rollout",
		AssignedTo: []string{"EMP001", "EMP002"},
		Tags:       []string{"ml", "priority"},
	})
	require.NoError(t, err)
	assert.Equal(t, "POC-0001", created.Code)
}

func TestDailyStatus_ListByDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/daily-status", r.URL.Path)
		assert.Equal(t, "EMP001", r.URL.Query().Get("employeeId"))
		assert.Equal(t, "2026-08-29", r.URL.Query().Get("date"))
		w.Write([]byte(`[{"id":"d1","employeeId":"EMP001","date":"2026-08-29","usecaseId":"u1","leadIds":"L1,L2","statusText":"model tuning","hours":6,"minutes":30}]`))
	}))
	defer srv.Close()

	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	entries, err := testClient(srv.URL).ListDailyStatus(context.Background(), "EMP001", date)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"L1", "L2"}, entries[0].LeadIDs)
	assert.Equal(t, 390, entries[0].WorkedMinutes())
	assert.Equal(t, "2026-08-29", entries[0].Date.Format("2006-01-02"))
}

func TestReportSummary_ScopedAndUnscoped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("employeeId") {
			assert.Equal(t, "EMP001", r.URL.Query().Get("employeeId"))
		}
		json.NewEncoder(w).Encode(ReportSummary{
			Total:         3,
			ByProcessType: map[string]int{"POC": 2, "Demo": 1},
			ByStatus:      map[string]int{"Ongoing": 3},
		})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	scoped, err := client.ReportSummary(context.Background(), "EMP001")
	require.NoError(t, err)
	assert.Equal(t, 3, scoped.Total)
	assert.Equal(t, 2, scoped.ByProcessType["POC"])

	global, err := client.ReportSummary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, global.ByStatus["Ongoing"])
}

func TestLookups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/lookups/sales-persons", "/api/lookups/users", "/api/lookups/approvers":
			w.Write([]byte(`[{"employeeId":"EMP009","name":"Priya N"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	for _, fetch := range []func(context.Context) ([]Person, error){
		client.SalesPersons, client.AssignableUsers, client.Approvers,
	} {
		people, err := fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, people, 1)
		assert.Equal(t, "EMP009", people[0].EmployeeID)
		assert.Equal(t, "Priya N", people[0].Name)
	}
}
