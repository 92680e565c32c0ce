package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/flight-events/internal/dto"
	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

type stubEventCodeService struct {
	codes     []models.EventCode
	createErr error
	lastReq   dto.CreateEventCodeRequest
}

func (s *stubEventCodeService) ListEventCodes(context.Context) ([]models.EventCode, error) {
	return s.codes, nil
}

func (s *stubEventCodeService) CreateEventCode(_ context.Context, req dto.CreateEventCodeRequest) (*models.EventCode, error) {
	s.lastReq = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.EventCode{CodeID: "x", Code: req.Code, Name: req.Name}, nil
}

func (s *stubEventCodeService) TimeKinds() []models.TimeKind { return models.AllTimeKinds }

type stubNotificationService struct {
	lastUID string
}

func (s *stubNotificationService) ListNotifications(_ context.Context, uid string) ([]models.Notification, error) {
	s.lastUID = uid
	return nil, nil
}

func TestCreateEventCode_Duplicate(t *testing.T) {
	svc := &stubEventCodeService{createErr: errs.NewAlreadyExistsError("The event code must be unique!")}
	resp := &stubResponseHandler{}
	h := NewEventCodeHandlers(&Deps{ResponseHandler: resp, EventCodeSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/event-codes", strings.NewReader(`{"code":"TO","name":"Take-Off"}`))
	h.CreateEventCode(httptest.NewRecorder(), withUID(req, "uid1"))

	var ae *errs.AlreadyExistsError
	if !errors.As(resp.handleError, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %v", resp.handleError)
	}
	if svc.lastReq.Code != "TO" {
		t.Fatalf("code = %q", svc.lastReq.Code)
	}
}

func TestGetTimeKinds_OK(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewEventCodeHandlers(&Deps{ResponseHandler: resp, EventCodeSvc: &stubEventCodeService{}})

	h.GetTimeKinds(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/time-kinds", nil))

	kinds, ok := resp.writeSuccessData.([]models.TimeKind)
	if !ok || len(kinds) != 5 {
		t.Fatalf("unexpected data: %#v", resp.writeSuccessData)
	}
}

func TestListNotifications_UsesUID(t *testing.T) {
	svc := &stubNotificationService{}
	resp := &stubResponseHandler{}
	h := NewNotificationHandlers(&Deps{ResponseHandler: resp, NotificationSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	h.ListNotifications(httptest.NewRecorder(), withUID(req, "uid7"))

	if svc.lastUID != "uid7" || !resp.writeSuccessCalled {
		t.Fatalf("uid=%q called=%v", svc.lastUID, resp.writeSuccessCalled)
	}
}
