package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"rentledger/config"
	"rentledger/constants"
	"rentledger/models"
	"rentledger/services"
	"rentledger/types"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type apiResponse struct {
	Code      int             `json:"code"`
	Mess      string          `json:"mess"`
	ErrorCode string          `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
	Total     int             `json:"total"`
}

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	db       *gorm.DB
	property *models.Property
	landlord *models.Landlord
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	landlord := &models.Landlord{CompanyName: "Bayview Rentals"}
	db.Create(landlord)
	property := &models.Property{LandlordID: landlord.ID, Title: "Loft 4B", Status: constants.PropertyStatusApproved}
	db.Create(property)

	locker := services.NewLocalLocker()
	audit := services.NewAuditService(services.AuditServiceOptions{DB: db})
	router := gin.New()
	SetupRoutes(router, Services{
		Ledger:    services.NewLedgerService(services.LedgerServiceOptions{DB: db, Locker: locker, Audit: audit}),
		Contracts: services.NewContractService(services.ContractServiceOptions{DB: db, Locker: locker, Audit: audit}),
		Occupancy: services.NewOccupancyService(services.OccupancyServiceOptions{DB: db}),
		Audit:     audit,
	}, testSecret)

	return &testServer{t: t, router: router, db: db, property: property, landlord: landlord}
}

func (s *testServer) token(actor types.Actor) string {
	s.t.Helper()
	tok, err := services.IssueToken(actor, testSecret, time.Hour)
	if err != nil {
		s.t.Fatalf("IssueToken: %v", err)
	}
	return tok
}

func (s *testServer) do(method, path string, body interface{}, actor *types.Actor, headers ...string) (*httptest.ResponseRecorder, apiResponse) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(*actor))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			s.t.Fatalf("decoding response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

var (
	adminActor      = types.NewActor(2, "Linh", constants.RoleAdmin)
	superAdminActor = types.NewActor(1, "Root", constants.RoleSuperAdmin)
	landlordActor   = types.NewActor(3, "Owner", constants.RoleLandlord)
)

func blockBody(propertyID uint, start, end string, status constants.BlockStatus, force bool) map[string]interface{} {
	return map[string]interface{}{
		"propertyId":   propertyID,
		"startDate":    start,
		"endDate":      end,
		"status":       status,
		"forceOverlap": force,
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	if w, _ := s.do(http.MethodGet, "/api/v1/audit", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed token, got %d", w.Code)
	}

	if w, _ := s.do(http.MethodPost, "/api/v1/blocks", blockBody(s.property.ID, "2024-03-01", "2024-03-02", constants.BlockStatusOccupied, false), &landlordActor); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for landlord write, got %d", w.Code)
	}
	if w, _ := s.do(http.MethodGet, "/api/v1/properties/"+itoa(s.property.ID)+"/blocks", nil, &landlordActor); w.Code != http.StatusOK {
		t.Errorf("landlord should read blocks, got %d", w.Code)
	}
}

func TestBlockEndpoints(t *testing.T) {
	s := newTestServer(t)
	pid := s.property.ID

	w, resp := s.do(http.MethodPost, "/api/v1/blocks", blockBody(pid, "2024-03-10", "2024-03-20", constants.BlockStatusReserved, false), &adminActor)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID   uint `json:"id"`
		Days int  `json:"days"`
	}
	json.Unmarshal(resp.Data, &created)
	if created.ID == 0 || created.Days != 11 {
		t.Errorf("unexpected created block %+v", created)
	}

	w, resp = s.do(http.MethodPost, "/api/v1/blocks", blockBody(pid, "2024-03-20", "2024-03-25", constants.BlockStatusOccupied, false), &adminActor)
	if w.Code != http.StatusConflict || resp.ErrorCode != "OVERLAP_CONFLICT" {
		t.Fatalf("expected 409 conflict, got %d %s", w.Code, w.Body.String())
	}
	var conflict struct {
		ConflictingIDs []uint `json:"conflictingIds"`
	}
	json.Unmarshal(resp.Data, &conflict)
	if len(conflict.ConflictingIDs) != 1 || conflict.ConflictingIDs[0] != created.ID {
		t.Errorf("unexpected conflicting ids %v", conflict.ConflictingIDs)
	}

	if w, _ := s.do(http.MethodPost, "/api/v1/blocks", blockBody(pid, "2024-03-20", "2024-03-25", constants.BlockStatusOccupied, true), &adminActor); w.Code != http.StatusForbidden {
		t.Errorf("admin force should be 403, got %d", w.Code)
	}
	w, resp = s.do(http.MethodPost, "/api/v1/blocks", blockBody(pid, "2024-03-20", "2024-03-25", constants.BlockStatusOccupied, true), &superAdminActor)
	if w.Code != http.StatusCreated {
		t.Fatalf("super admin force should succeed, got %d", w.Code)
	}
	var forced struct {
		ID uint `json:"id"`
	}
	json.Unmarshal(resp.Data, &forced)

	w, resp = s.do(http.MethodGet, "/api/v1/blocks/"+itoa(created.ID)+"/overlaps", nil, &adminActor)
	if w.Code != http.StatusOK || resp.Total != 1 {
		t.Errorf("expected one overlapping block, got %d total=%d", w.Code, resp.Total)
	}

	w, resp = s.do(http.MethodGet, "/api/v1/properties/"+itoa(pid)+"/overlap?start=2024-03-21&end=2024-03-22", nil, &adminActor)
	var overlap struct {
		Overlaps bool `json:"overlaps"`
	}
	json.Unmarshal(resp.Data, &overlap)
	if w.Code != http.StatusOK || !overlap.Overlaps {
		t.Errorf("expected overlap true, got %d %s", w.Code, w.Body.String())
	}

	w, _ = s.do(http.MethodPut, "/api/v1/blocks/"+itoa(forced.ID), blockBody(0, "2024-04-01", "2024-04-03", constants.BlockStatusOccupied, false), &adminActor)
	if w.Code != http.StatusOK {
		t.Errorf("expected replace 200, got %d: %s", w.Code, w.Body.String())
	}

	if w, _ := s.do(http.MethodDelete, "/api/v1/blocks/"+itoa(forced.ID), nil, &adminActor); w.Code != http.StatusOK {
		t.Errorf("expected delete 200, got %d", w.Code)
	}
	if w, resp := s.do(http.MethodDelete, "/api/v1/blocks/"+itoa(forced.ID), nil, &adminActor); w.Code != http.StatusNotFound || resp.ErrorCode != "NOT_FOUND" {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w, _ := s.do(http.MethodDelete, "/api/v1/blocks/abc", nil, &adminActor); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestBlockEndpoints_Validation(t *testing.T) {
	s := newTestServer(t)
	pid := s.property.ID

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode string
	}{
		{"bad date format", blockBody(pid, "10/03/2024", "2024-03-20", constants.BlockStatusOccupied, false), "INVALID_FORMAT"},
		{"reversed range", blockBody(pid, "2024-03-20", "2024-03-10", constants.BlockStatusOccupied, false), "INVALID_RANGE"},
		{"unknown status", blockBody(pid, "2024-03-10", "2024-03-20", "booked", false), "INVALID_STATUS"},
		{"missing dates", map[string]interface{}{"propertyId": pid, "status": "occupied"}, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := s.do(http.MethodPost, "/api/v1/blocks", tt.body, &adminActor)
			if w.Code != http.StatusBadRequest || resp.ErrorCode != tt.wantCode {
				t.Errorf("expected 400 %s, got %d %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}

	if w, _ := s.do(http.MethodPost, "/api/v1/blocks", blockBody(9999, "2024-03-10", "2024-03-20", constants.BlockStatusOccupied, false), &adminActor); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown property, got %d", w.Code)
	}
	if w, resp := s.do(http.MethodGet, "/api/v1/properties/9999/overlap?start=2024-03-10&end=2024-03-20", nil, &adminActor); w.Code != http.StatusNotFound || resp.ErrorCode != "NOT_FOUND" {
		t.Errorf("expected 404 overlap check for unknown property, got %d %s", w.Code, w.Body.String())
	}
}

func TestContractEndpoints(t *testing.T) {
	s := newTestServer(t)

	body := map[string]interface{}{
		"propertyId":  s.property.ID,
		"landlordId":  s.landlord.ID,
		"renterName":  "Jane Renter",
		"startDate":   "2024-01-01",
		"endDate":     "2024-06-30",
		"pricingType": "monthly",
		"rent":        1800,
		"totalValue":  10800,
	}
	w, resp := s.do(http.MethodPost, "/api/v1/contracts", body, &adminActor)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var contract struct {
		ID             uint   `json:"id"`
		Reference      string `json:"reference"`
		DurationInDays int    `json:"durationInDays"`
	}
	json.Unmarshal(resp.Data, &contract)
	if contract.Reference != models.ContractReference(contract.ID) || contract.DurationInDays != 181 {
		t.Errorf("unexpected contract %+v", contract)
	}

	w, resp = s.do(http.MethodGet, "/api/v1/properties/"+itoa(s.property.ID)+"/blocks", nil, &adminActor)
	var blocks []struct {
		Status            string `json:"status"`
		Source            string `json:"source"`
		ContractReference string `json:"contractReference"`
	}
	json.Unmarshal(resp.Data, &blocks)
	if w.Code != http.StatusOK || len(blocks) != 1 {
		t.Fatalf("expected one block, got %d %s", w.Code, w.Body.String())
	}
	if blocks[0].Status != "occupied" || blocks[0].Source != "offline" || blocks[0].ContractReference != contract.Reference {
		t.Errorf("unexpected contract block %+v", blocks[0])
	}

	if w, _ := s.do(http.MethodPost, "/api/v1/contracts", body, &adminActor); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for second contract on same dates, got %d", w.Code)
	}

	w, resp = s.do(http.MethodPut, "/api/v1/contracts/"+itoa(contract.ID)+"/status",
		map[string]interface{}{"contractStatus": "canceled", "freeAvailability": true}, &adminActor)
	var status struct {
		FreedBlocks int `json:"freedBlocks"`
	}
	json.Unmarshal(resp.Data, &status)
	if w.Code != http.StatusOK || status.FreedBlocks != 1 {
		t.Errorf("expected one freed block, got %d %s", w.Code, w.Body.String())
	}

	w, resp = s.do(http.MethodPost, "/api/v1/contracts/"+itoa(contract.ID)+"/free-availability", nil, &adminActor)
	var freed struct {
		RemovedBlocks int `json:"removedBlocks"`
	}
	json.Unmarshal(resp.Data, &freed)
	if w.Code != http.StatusOK || freed.RemovedBlocks != 0 {
		t.Errorf("second free should remove nothing, got %d %s", w.Code, w.Body.String())
	}

	if w, _ := s.do(http.MethodGet, "/api/v1/contracts/"+itoa(contract.ID), nil, &adminActor); w.Code != http.StatusOK {
		t.Errorf("expected 200 for contract detail, got %d", w.Code)
	}
	if w, _ := s.do(http.MethodGet, "/api/v1/contracts/upcoming?days=30", nil, &adminActor); w.Code != http.StatusOK {
		t.Errorf("expected 200 for upcoming contracts, got %d", w.Code)
	}
}

func TestVacancyAndAuditEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(http.MethodGet, "/api/v1/occupancy/vacancy?days=30", nil, &adminActor)
	var snap struct {
		Rate           float64 `json:"rate"`
		PublishedCount int64   `json:"publishedCount"`
	}
	json.Unmarshal(resp.Data, &snap)
	if w.Code != http.StatusOK || snap.Rate != 100.0 || snap.PublishedCount != 1 {
		t.Errorf("expected 100%% vacancy, got %d %s", w.Code, w.Body.String())
	}
	if w, _ := s.do(http.MethodGet, "/api/v1/occupancy/vacancy?days=-5", nil, &adminActor); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative days, got %d", w.Code)
	}

	today := time.Now().UTC().Format(constants.DateLayout)
	w, _ = s.do(http.MethodPost, "/api/v1/blocks", blockBody(s.property.ID, today, today, constants.BlockStatusOccupied, false), &adminActor, "X-Request-ID", "req-42")
	if w.Code != http.StatusCreated || w.Header().Get("X-Request-ID") != "req-42" {
		t.Fatalf("expected 201 with request id echoed, got %d %q", w.Code, w.Header().Get("X-Request-ID"))
	}

	w, resp = s.do(http.MethodGet, "/api/v1/audit?limit=5&entity=availability_block", nil, &adminActor)
	var entries []struct {
		Action    string `json:"action"`
		ActorName string `json:"actorName"`
		RequestID string `json:"requestId"`
	}
	json.Unmarshal(resp.Data, &entries)
	if w.Code != http.StatusOK || len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d %s", w.Code, w.Body.String())
	}
	if entries[0].Action != constants.AuditActionCreated || entries[0].ActorName != "Linh" || entries[0].RequestID != "req-42" {
		t.Errorf("unexpected audit entry %+v", entries[0])
	}

	if w, _ := s.do(http.MethodGet, "/api/v1/audit?entity=room", nil, &adminActor); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown entity filter, got %d", w.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
