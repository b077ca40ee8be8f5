package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/api/middleware"
	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

type stubPatternService struct {
	uploaded *ports.UploadPatternInput
	download *ports.FileDownload
	err      error
}

func (s *stubPatternService) Upload(_ context.Context, _ *domain.User, orderID string, in ports.UploadPatternInput) (*domain.Pattern, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, err := io.ReadAll(in.Content)
	if err != nil {
		return nil, err
	}
	in.Content = bytes.NewReader(data)
	s.uploaded = &in
	return &domain.Pattern{ID: "p1", OrderID: orderID, Stage: in.Stage, Slot: in.Slot, Filename: in.Filename}, nil
}

func (s *stubPatternService) List(context.Context, *domain.User, string, domain.Stage) ([]*domain.Pattern, error) {
	return nil, s.err
}

func (s *stubPatternService) Download(context.Context, *domain.User, string) (*ports.FileDownload, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.download, nil
}

func (s *stubPatternService) Delete(context.Context, *domain.User, string) error {
	return s.err
}

func patternContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewRequestValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, &domain.User{ID: "u1", Role: domain.RoleAdmin, IsApproved: true})
	return c, rec
}

func TestDownloadSetsAttachmentHeaders(t *testing.T) {
	svc := &stubPatternService{download: &ports.FileDownload{
		Filename: "шаблон №1.pdf",
		Content:  []byte("pdf bytes"),
	}}
	h := NewPatternHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := patternContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Download(c); err != nil {
		t.Fatalf("download: %v", err)
	}

	if got := rec.Header().Get(echo.HeaderContentType); got != echo.MIMEOctetStream {
		t.Errorf("content type: got %q", got)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if disposition == "" {
		t.Fatal("missing Content-Disposition")
	}
	// Non-ASCII filenames must be percent-encoded per RFC 5987.
	want := "attachment; filename*=UTF-8''%D1%88%D0%B0%D0%B1%D0%BB%D0%BE%D0%BD%20%E2%84%961.pdf"
	if disposition != want {
		t.Errorf("disposition:\n got %q\nwant %q", disposition, want)
	}
	if rec.Body.String() != "pdf bytes" {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func multipartUpload(t *testing.T, fields map[string]string, fileField, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadParsesMultipartForm(t *testing.T) {
	svc := &stubPatternService{}
	h := NewPatternHandler(svc, zerolog.Nop())

	body, contentType := multipartUpload(t, map[string]string{"stage": "initial", "slot": "2"}, "file", "sleeve.pdf", "bytes")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c, rec := patternContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("o1")

	if err := h.Upload(c); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d", rec.Code)
	}
	if svc.uploaded == nil {
		t.Fatal("service not called")
	}
	if svc.uploaded.Stage != domain.StageInitial || svc.uploaded.Slot != 2 {
		t.Errorf("parsed input: %+v", svc.uploaded)
	}
	if svc.uploaded.Filename != "sleeve.pdf" {
		t.Errorf("filename: got %q", svc.uploaded.Filename)
	}
}

func TestUploadRejectsNonNumericSlot(t *testing.T) {
	h := NewPatternHandler(&stubPatternService{}, zerolog.Nop())

	body, contentType := multipartUpload(t, map[string]string{"stage": "initial", "slot": "two"}, "file", "a.pdf", "x")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c, _ := patternContext(t, req)

	err := h.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	h := NewPatternHandler(&stubPatternService{}, zerolog.Nop())

	body, contentType := multipartUpload(t, map[string]string{"stage": "initial", "slot": "1"}, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c, _ := patternContext(t, req)

	err := h.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}

func TestDownloadPropagatesNotFound(t *testing.T) {
	h := NewPatternHandler(&stubPatternService{err: domain.ErrPatternNotFound}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := patternContext(t, req)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.Download(c); err != domain.ErrPatternNotFound {
		t.Errorf("got %v, want ErrPatternNotFound", err)
	}
}
