package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/Lomoncivici/Kyrsach4/app/repository"
)

// analyticsPeriod maps the ?period= query to a start date. "all" starts at
// the epoch of the service.
func analyticsPeriod(c *fiber.Ctx) (string, time.Time) {
	period := c.Query("period", "30d")
	now := time.Now()
	switch period {
	case "7d":
		return period, now.AddDate(0, 0, -7)
	case "90d":
		return period, now.AddDate(0, 0, -90)
	case "all":
		return period, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return "30d", now.AddDate(0, 0, -30)
	}
}

// HandleAdminAnalytics renders the payment analytics dashboard.
func HandleAdminAnalytics(c *fiber.Ctx) error {
	period, start := analyticsPeriod(c)
	repos := repository.GetGlobalRepositories()
	end := time.Now().AddDate(0, 0, 1)

	stats, err := repos.Payment.GetDailyStats(start, end)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "analytics unavailable")
	}

	var totalPayments, totalPaid int64
	var totalRevenue float64
	for _, row := range stats {
		totalPayments += row.Payments
		totalPaid += row.Paid
		totalRevenue += row.Revenue
	}

	// Secondary feeds degrade to empty on failure.
	registrations, _ := repos.User.GetDailyRegistrations(start, end)
	activity, _ := repos.Interaction.ListRecentActivity(1000)

	return c.Render("admin/analytics", viewData(c, "Аналитика", fiber.Map{
		"Stats":         stats,
		"Period":        period,
		"TotalPayments": totalPayments,
		"TotalPaid":     totalPaid,
		"TotalRevenue":  totalRevenue,
		"Registrations": registrations,
		"Activity":      activity,
	}))
}

// HandleAdminAnalyticsExport streams the same aggregation as CSV, Excel
// or a standalone HTML table, by ?format=.
func HandleAdminAnalyticsExport(c *fiber.Ctx) error {
	period, start := analyticsPeriod(c)

	stats, err := repository.GetGlobalRepositories().Payment.GetDailyStats(start, time.Now().AddDate(0, 0, 1))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "analytics unavailable")
	}

	filename := "payments_" + period
	switch c.Query("format", "csv") {
	case "xlsx":
		return exportExcel(c, filename, stats)
	case "html":
		return exportHTML(c, stats)
	default:
		return exportCSV(c, filename, stats)
	}
}

func exportCSV(c *fiber.Ctx, filename string, stats []repository.DailyPaymentStats) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"date", "payments", "paid", "revenue"})
	for _, row := range stats {
		w.Write([]string{
			row.Date.Format("2006-01-02"),
			strconv.FormatInt(row.Payments, 10),
			strconv.FormatInt(row.Paid, 10),
			fmt.Sprintf("%.2f", row.Revenue),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`.csv"`)
	return c.Send(buf.Bytes())
}

func exportExcel(c *fiber.Ctx, filename string, stats []repository.DailyPaymentStats) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Payments", "Paid", "Revenue"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range stats {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.Payments)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.Paid)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.Revenue)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`.xlsx"`)
	return c.Send(buf.Bytes())
}

func exportHTML(c *fiber.Ctx, stats []repository.DailyPaymentStats) error {
	var buf bytes.Buffer
	buf.WriteString("<table border=\"1\"><tr><th>Date</th><th>Payments</th><th>Paid</th><th>Revenue</th></tr>")
	for _, row := range stats {
		fmt.Fprintf(&buf, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%.2f</td></tr>",
			row.Date.Format("2006-01-02"), row.Payments, row.Paid, row.Revenue)
	}
	buf.WriteString("</table>")

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
