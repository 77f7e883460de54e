package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/securecorp/secreport/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRenderer writes a fake PDF file, or fails with a configured error.
type stubRenderer struct {
	dir   string
	err   error
	path  string
	calls int
}

func (r *stubRenderer) RenderPDF(payload model.ReportPayload, reportsDir string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	path := filepath.Join(r.dir, payload.ReportType+".pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o600); err != nil {
		return "", err
	}
	r.path = path
	return path, nil
}

// stubSender records deliveries and fails with a configured error.
type stubSender struct {
	configured bool
	err        error
	recipients []string
	pdfPaths   []string
}

func (s *stubSender) Configured() bool      { return s.configured }
func (s *stubSender) TestConnection() error { return nil }

func (s *stubSender) SendReport(recipient string, payload model.ReportPayload, pdfPath string) error {
	s.recipients = append(s.recipients, recipient)
	s.pdfPaths = append(s.pdfPaths, pdfPath)
	return s.err
}

func newTestDelivery(t *testing.T, sender *stubSender) (*ReportDelivery, *stubRenderer) {
	t.Helper()
	renderer := &stubRenderer{dir: t.TempDir()}
	delivery := &ReportDelivery{
		Svc:      newTestService(&stubStore{}, nil),
		Mail:     sender,
		Renderer: renderer,
	}
	return delivery, renderer
}

func TestGenerateAndDeliverSuccess(t *testing.T) {
	sender := &stubSender{configured: true}
	delivery, renderer := newTestDelivery(t, sender)

	resp, err := delivery.GenerateAndDeliver(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.ReportID)
	assert.Contains(t, resp.Message, "ciso@securecorp.com")

	require.Len(t, sender.recipients, 1)
	assert.Equal(t, "ciso@securecorp.com", sender.recipients[0])
	assert.Equal(t, renderer.path, sender.pdfPaths[0])
}

func TestGenerateAndDeliverUnconfiguredSenderIsInfo(t *testing.T) {
	sender := &stubSender{configured: false}
	delivery, renderer := newTestDelivery(t, sender)

	resp, err := delivery.GenerateAndDeliver(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "info", resp.Status)
	assert.NotEmpty(t, resp.ReportID)
	assert.Contains(t, resp.Message, renderer.path)
	assert.Empty(t, sender.recipients, "nothing is sent without credentials")
	assert.FileExists(t, renderer.path)
}

func TestGenerateAndDeliverDeliveryFailureKeepsPDF(t *testing.T) {
	sender := &stubSender{
		configured: true,
		err:        &model.DeliveryError{Recipient: "ciso@securecorp.com", Err: errors.New("connection refused")},
	}
	delivery, renderer := newTestDelivery(t, sender)

	resp, err := delivery.GenerateAndDeliver(context.Background(), validRequest())
	require.NoError(t, err, "a failed delivery degrades the status, it is not an error")
	assert.Equal(t, "warning", resp.Status)
	assert.NotEmpty(t, resp.ReportID)
	assert.Contains(t, resp.Message, renderer.path)
	assert.FileExists(t, renderer.path, "the artifact survives a failed delivery")
}

func TestGenerateAndDeliverRenderFailureIsFatal(t *testing.T) {
	sender := &stubSender{configured: true}
	delivery, renderer := newTestDelivery(t, sender)
	renderer.err = &model.RenderError{Err: errors.New("wkhtmltopdf exited 1")}

	_, err := delivery.GenerateAndDeliver(context.Background(), validRequest())
	var re *model.RenderError
	require.ErrorAs(t, err, &re)
	assert.Empty(t, sender.recipients, "no delivery without an artifact")
}

func TestGenerateAndDeliverRejectsInvalidRequest(t *testing.T) {
	sender := &stubSender{configured: true}
	delivery, renderer := newTestDelivery(t, sender)

	req := validRequest()
	req.ReportType = "weekly_digest"
	_, err := delivery.GenerateAndDeliver(context.Background(), req)
	require.Error(t, err)
	assert.True(t, model.IsRequestError(err))
	assert.Equal(t, 0, renderer.calls, "nothing is rendered for a rejected request")
	assert.Empty(t, sender.recipients)
}

func TestGenerateAndDeliverEnrichmentFailureStillSucceeds(t *testing.T) {
	sender := &stubSender{configured: true}
	renderer := &stubRenderer{dir: t.TempDir()}
	delivery := &ReportDelivery{
		Svc:      newTestService(&stubStore{}, &stubProvider{err: model.ErrEnrichmentUnavailable}),
		Mail:     sender,
		Renderer: renderer,
	}

	resp, err := delivery.GenerateAndDeliver(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
}
