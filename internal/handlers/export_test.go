package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubArtifacts struct {
	url string
	err error
}

func (s *stubArtifacts) UploadExport(ctx context.Context, reportID string, pdf []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func exportCount(t *testing.T, env *testEnv, reportID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&gormmodels.ReportExport{}).Where("report_id = ?", reportID).Count(&count).Error)
	return count
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t)
	reportID, _, _ := env.createReportWithPage(t)

	w := env.do(t, http.MethodGet, "/api/reports/"+reportID+"/export/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "%PDF")
	assert.Equal(t, 1, env.renderer.calls)

	// Audit record lands after the response, with a null file URL.
	assert.EqualValues(t, 1, exportCount(t, env, reportID))
	var export gormmodels.ReportExport
	require.NoError(t, env.db.Where("report_id = ?", reportID).First(&export).Error)
	assert.Equal(t, "PDF", export.Format)
	assert.Nil(t, export.FileURL)
}

func TestExportPDFEmptyReport(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/reports", map[string]string{"name": "Empty"})
	require.Equal(t, http.StatusCreated, w.Code)
	var report gormmodels.Report
	decode(t, w, &report)

	w = env.do(t, http.MethodGet, "/api/reports/"+report.ID+"/export/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The pipeline is never invoked and nothing is recorded.
	assert.Zero(t, env.renderer.calls)
	assert.Zero(t, exportCount(t, env, report.ID))
}

func TestExportPDFMissingReport(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/reports/no-such-id/export/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, env.renderer.calls)
}

func TestExportPDFInvalidQuery(t *testing.T) {
	env := newTestEnv(t)
	reportID, _, _ := env.createReportWithPage(t)

	w := env.do(t, http.MethodGet, "/api/reports/"+reportID+"/export/pdf?includeWatermark=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.renderer.calls)
}

func TestExportPDFPageFilter(t *testing.T) {
	env := newTestEnv(t)
	reportID, pageID, _ := env.createReportWithPage(t)

	w := env.do(t, http.MethodGet, "/api/reports/"+reportID+"/export/pdf?pages="+pageID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/reports/"+reportID+"/export/pdf?pages=not-a-page", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportPDFRenderFailure(t *testing.T) {
	env := newTestEnv(t)
	reportID, _, _ := env.createReportWithPage(t)
	env.renderer.err = errors.New("chrome crashed")

	w := env.do(t, http.MethodGet, "/api/reports/"+reportID+"/export/pdf", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, exportCount(t, env, reportID))
}

func TestExportPDFRecordsArtifactURL(t *testing.T) {
	env := newTestEnv(t)
	reportID, _, _ := env.createReportWithPage(t)

	// Rebuild the export route with an artifact store attached.
	store := &stubArtifacts{url: "https://storage.example.com/exports/x.pdf"}
	env.rebindExportHandler(t, store)

	w := env.do(t, http.MethodGet, "/api/reports/"+reportID+"/export/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var export gormmodels.ReportExport
	require.NoError(t, env.db.Where("report_id = ?", reportID).First(&export).Error)
	require.NotNil(t, export.FileURL)
	assert.Equal(t, store.url, *export.FileURL)
}

func TestExportPDFArtifactFailureIsBestEffort(t *testing.T) {
	env := newTestEnv(t)
	reportID, _, _ := env.createReportWithPage(t)
	env.rebindExportHandler(t, &stubArtifacts{err: errors.New("bucket unavailable")})

	w := env.do(t, http.MethodGet, "/api/reports/"+reportID+"/export/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The export record is still written, just without a file URL.
	var export gormmodels.ReportExport
	require.NoError(t, env.db.Where("report_id = ?", reportID).First(&export).Error)
	assert.Nil(t, export.FileURL)
}
