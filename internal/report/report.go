// Package report assembles the clinician-facing PDF: summary metrics,
// per-session metadata and phase breakdown, with the rendered EMG chart
// embedded when one is available.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
	"github.com/neubond/emgdash/internal/utils"
)

// Options carries the report framing that does not live on the sessions.
type Options struct {
	PatientName string
	Period      string    // free-form, shown in the info line when set
	Generated   time.Time // zero means now
}

const (
	pageMargin  = 15.0
	labelWidth  = 55.0
	valueWidth  = 45.0
	chartHeight = 70.0
)

// Write builds the rehabilitation report for the selected sessions and
// writes the PDF to w. charts maps session ID to a rendered chart image
// file; sessions without an entry get no chart.
func Write(w io.Writer, sessions []models.Session, charts map[string]string, opts Options) error {
	if len(sessions) == 0 {
		return emg.ErrEmptySelection
	}

	summary, err := emg.Summarize(sessions)
	if err != nil {
		return err
	}

	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	patient := opts.PatientName
	if patient == "" {
		patient = sessions[0].PatientID
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Clinical Rehabilitation Report", "", 1, "C", false, 0, "")

	info := fmt.Sprintf("Patient: %s | Generated: %s", patient, generated.Format("02 Jan 2006 15:04"))
	if opts.Period != "" {
		info += " | Period: " + opts.Period
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, info, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	writeKeyMetrics(pdf, summary)

	for _, session := range sessions {
		writeSession(pdf, session, charts[session.ID])
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// DefaultFilename names the report after the patient, the way the
// download button always did.
func DefaultFilename(patientName string, now time.Time) string {
	name := utils.SafeFilename(patientName)
	if name == "" {
		name = "patient"
	}
	return fmt.Sprintf("%s_report_%s.pdf", name, now.Format("20060102_150405"))
}

func writeKeyMetrics(pdf *fpdf.Fpdf, summary emg.Summary) {
	sectionHeader(pdf, "Key Metrics")

	days := len(summary.PerDay)
	perDay := float64(summary.Sessions) / float64(max(days, 1))

	metricRow(pdf, "Total Sessions", fmt.Sprintf("%d", summary.Sessions))
	metricRow(pdf, "Active Days", fmt.Sprintf("%d", days))
	metricRow(pdf, "Total Duration", summary.TotalDuration.Round(time.Second).String())
	metricRow(pdf, "Avg Session Duration", summary.MeanDuration.Round(time.Second).String())
	metricRow(pdf, "Sessions/Day", fmt.Sprintf("%.2f", perDay))
	pdf.Ln(4)
}

func writeSession(pdf *fpdf.Fpdf, session models.Session, chart string) {
	sectionHeader(pdf, "Session "+session.ID)

	metricRow(pdf, "Patient", session.PatientID)
	metricRow(pdf, "Start", utils.FormatTimestamp(session.StartTime))
	metricRow(pdf, "Duration", utils.FormatDurationSeconds(session.Duration().Seconds()))
	metricRow(pdf, "Channels", fmt.Sprintf("%d", len(session.Channels)))
	metricRow(pdf, "Samples", fmt.Sprintf("%d", session.SampleCount()))
	pdf.Ln(2)

	writePhaseTable(pdf, session)

	if chart != "" {
		pdf.Ln(2)
		width, _ := pdf.GetPageSize()
		pdf.ImageOptions(chart, pageMargin, pdf.GetY(), width-2*pageMargin, chartHeight,
			false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetY(pdf.GetY() + chartHeight)
	}
	pdf.Ln(4)
}

func writePhaseTable(pdf *fpdf.Fpdf, session models.Session) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(236, 240, 241)
	for _, h := range []string{"Phase", "Start", "End", "Samples"} {
		pdf.CellFormat(35, 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, iv := range session.Phases {
		pdf.CellFormat(35, 6, iv.Label.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", iv.Start), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", iv.End), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", iv.End-iv.Start), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func sectionHeader(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func metricRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(236, 240, 241)
	pdf.CellFormat(labelWidth, 6, label, "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueWidth, 6, value, "1", 1, "L", false, 0, "")
}
