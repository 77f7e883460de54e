package reports

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/securecorp/secreport/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGenerator records the requests it receives.
type mockGenerator struct {
	requests []model.ReportRequest
	resp     model.ReportResponse
	err      error
}

func (m *mockGenerator) GenerateAndDeliver(ctx context.Context, req model.ReportRequest) (model.ReportResponse, error) {
	m.requests = append(m.requests, req)
	return m.resp, m.err
}

func TestHandleReportRequested(t *testing.T) {
	gen := &mockGenerator{resp: model.ReportResponse{Status: "success"}}

	event := ReportRequestedEvent{
		EventType:     "report.requested",
		EventID:       "evt-1",
		SchemaVersion: "v1",
		Request: model.ReportRequest{
			RecipientEmail: "ciso@securecorp.com",
			ReportType:     "monthly_threat",
			TimePeriod:     "last_month",
		},
	}
	msg, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, HandleReportRequested(context.Background(), msg, gen))
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "monthly_threat", gen.requests[0].ReportType)
}

func TestHandleReportRequestedBadJSON(t *testing.T) {
	gen := &mockGenerator{}
	err := HandleReportRequested(context.Background(), []byte("{not json"), gen)
	assert.Error(t, err)
	assert.Empty(t, gen.requests)
}

func TestHandleReportRequestedMissingFields(t *testing.T) {
	gen := &mockGenerator{}
	msg, _ := json.Marshal(ReportRequestedEvent{EventID: "evt-2"})
	err := HandleReportRequested(context.Background(), msg, gen)
	assert.Error(t, err)
	assert.Empty(t, gen.requests, "invalid events never reach the generator")
}

func TestNewReportProducerDisabled(t *testing.T) {
	p := NewReportProducer("", "secreport.events")
	assert.Nil(t, p)
	// A nil producer is safe to use.
	assert.NoError(t, p.PublishReportGenerated(context.Background(), model.ReportPayload{}, "a@b.com", "/tmp/r.pdf"))
	assert.NoError(t, p.Close())
}

func TestNewReportProducerConfigured(t *testing.T) {
	p := NewReportProducer("broker1:9092,broker2:9092", "secreport.events")
	require.NotNil(t, p)
	assert.Equal(t, "secreport.events", p.Writer.Topic)
	require.NoError(t, p.Close())
}
