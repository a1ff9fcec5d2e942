// Package coursepdf renders one-page course outline PDFs.
package coursepdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/go-pdf/fpdf"
)

// Institution is printed in the header and footer of every outline
type Institution struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// Generator renders course outlines
type Generator struct {
	institution Institution
}

// NewGenerator creates a Generator
func NewGenerator(institution Institution) *Generator {
	return &Generator{institution: institution}
}

var requirementLabels = map[models.RequirementType]string{
	models.RequirementIDCopy: "ID copy",
	models.RequirementMatric: "Matric",
	models.RequirementFee:    "Fee",
	models.RequirementMaths:  "Mathematics",
	models.RequirementOther:  "Other",
}

// Render writes the outline of course to w
func (g *Generator) Render(w io.Writer, course *models.Course) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(course.Title, true)
	pdf.SetAuthor(g.institution.Name, true)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		footer := strings.Join(nonEmpty(g.institution.Address, g.institution.Phone, g.institution.Email, g.institution.Website), "  |  ")
		pdf.CellFormat(0, 5, tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, tr(g.institution.Name), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.MultiCell(0, 8, tr(course.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	facts := nonEmpty(
		labelled("Duration", course.Duration),
		labelled("Level", capitalize(string(course.Level))),
		labelledInt("Credits", course.Credits),
	)
	if len(facts) > 0 {
		pdf.CellFormat(0, 6, tr(strings.Join(facts, "   ")), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	section := func(heading, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, tr(heading), "B", 1, "L", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(body), "", "L", false)
		pdf.Ln(3)
	}

	description := course.Description
	if description == "" {
		description = course.ShortDescription
	}
	section("Overview", description)
	section("Curriculum", course.Curriculum)
	section("Prerequisites", course.Prerequisites)
	section("Entry requirements", course.Requirements)

	if len(course.RequirementsList) > 0 {
		var b strings.Builder
		for _, r := range course.RequirementsList {
			marker := "Optional"
			if r.IsRequired {
				marker = "Required"
			}
			label := requirementLabels[r.RequirementType]
			fmt.Fprintf(&b, "- %s: %s (%s)\n", label, r.Description, marker)
		}
		section("Checklist", b.String())
	}

	section("Career opportunities", course.CareerOpportunities)
	section("Fees", feeLines(course))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render course pdf: %w", err)
	}
	return nil
}

func feeLines(c *models.Course) string {
	var lines []string
	add := func(label string, amount float64) {
		if amount > 0 {
			lines = append(lines, fmt.Sprintf("%s: R%.2f", label, amount))
		}
	}
	add("Registration fee", c.RegistrationFee)
	add("Deposit", c.DepositAmount)
	add("Monthly payment", c.MonthlyPayment)
	add("Assessment fee", c.AssessmentFee)
	add("Course fee", c.Fee)
	add("Total", c.TotalPayment)
	return strings.Join(lines, "\n")
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func labelledInt(label string, value int) string {
	if value <= 0 {
		return ""
	}
	return fmt.Sprintf("%s: %d", label, value)
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
