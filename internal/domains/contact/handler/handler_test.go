package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citylocal-backend/internal/domains/contact/model"
)

type stubService struct {
	submitted *model.SubmitTicketRequest
	ticket    *model.Ticket
	err       error
}

func (s *stubService) Submit(ctx context.Context, req *model.SubmitTicketRequest) (*model.Ticket, error) {
	s.submitted = req
	if s.err != nil {
		return nil, s.err
	}
	return s.ticket, nil
}

func (s *stubService) Get(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ticket, nil
}

func (s *stubService) List(ctx context.Context, status string, page, limit int) (*model.ListTicketsResponse, error) {
	return &model.ListTicketsResponse{Tickets: []*model.Ticket{s.ticket}, Total: 1, Page: 1, Pages: 1}, nil
}

func (s *stubService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateTicketStatusRequest) (*model.Ticket, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.ticket.Status = req.Status
	return s.ticket, nil
}

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewContactHandler(svc)
	r.POST("/contact", h.Submit)
	r.GET("/admin/contacts/:id", h.Get)
	r.PATCH("/admin/contacts/:id", h.UpdateStatus)
	return r
}

func sampleTicket() *model.Ticket {
	return &model.Ticket{
		ID:      uuid.New(),
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Wrong opening hours",
		Message: "The listed hours are out of date.",
		Status:  model.StatusNew,
	}
}

func TestSubmitReturns201(t *testing.T) {
	svc := &stubService{ticket: sampleTicket()}
	router := newRouter(svc)

	body, _ := json.Marshal(map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Wrong opening hours",
		"message": "The listed hours are out of date.",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Success bool         `json:"success"`
		Data    model.Ticket `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Wrong opening hours", envelope.Data.Subject)
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "jane@example.com", svc.submitted.Email)
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	router := newRouter(&stubService{ticket: sampleTicket()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGetUnknownTicketReturns404(t *testing.T) {
	router := newRouter(&stubService{err: model.ErrTicketNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/contacts/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeTicketNotFound)
}

func TestGetRejectsBadID(t *testing.T) {
	router := newRouter(&stubService{ticket: sampleTicket()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/contacts/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	svc := &stubService{ticket: sampleTicket()}
	router := newRouter(svc)

	body, _ := json.Marshal(map[string]string{"status": model.StatusResolved})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/contacts/"+svc.ticket.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), model.StatusResolved)
}
