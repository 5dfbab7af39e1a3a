package dashboardControllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func sortedMonths(byMonth map[string]float64) []string {
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		ti, _ := time.Parse("Jan 2006", months[i])
		tj, _ := time.Parse("Jan 2006", months[j])
		return ti.Before(tj)
	})
	return months
}

// GET /api/dashboard/export/excel (admin)
func ExportExcelHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := BuildSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard summary"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Sales Report")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sheet"})
			return
		}

		header := sheet.AddRow()
		header.AddCell().SetValue("Metric")
		header.AddCell().SetValue("Value")

		for _, row := range [][2]interface{}{
			{"Total Sales", summary.Sales.TotalSales},
			{"Total Orders", summary.Sales.TotalOrders},
			{"Average Order Value", summary.Sales.AverageOrderValue},
			{"Total Products", summary.Stock.TotalProducts},
			{"Out Of Stock Products", summary.Stock.OutOfStockProducts},
			{"Pending Deliveries", summary.Delivery.Pending},
			{"Shipped", summary.Delivery.Shipped},
			{"Delivered", summary.Delivery.Delivered},
			{"Cancelled", summary.Delivery.Cancelled},
			{"Average Rating", summary.Satisfaction.AverageRating},
			{"Total Reviews", summary.Satisfaction.TotalReviews},
		} {
			r := sheet.AddRow()
			r.AddCell().SetValue(row[0])
			r.AddCell().SetValue(row[1])
		}

		monthSheet, err := file.AddSheet("Sales By Month")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sheet"})
			return
		}
		mh := monthSheet.AddRow()
		mh.AddCell().SetValue("Month")
		mh.AddCell().SetValue("Sales")
		for _, month := range sortedMonths(summary.Sales.SalesByMonth) {
			r := monthSheet.AddRow()
			r.AddCell().SetValue(month)
			r.AddCell().SetValue(summary.Sales.SalesByMonth[month])
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="sales_report.xlsx"`)
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write excel file"})
		}
	}
}

// GET /api/dashboard/export/pdf (admin)
func ExportPDFHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := BuildSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard summary"})
			return
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, "Sales Report")
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Generated %s", time.Now().Format("02 Jan 2006 15:04")))
		pdf.Ln(12)

		pdf.SetFont("Arial", "", 11)
		for _, line := range []string{
			fmt.Sprintf("Total Sales: %.2f", summary.Sales.TotalSales),
			fmt.Sprintf("Total Orders: %d", summary.Sales.TotalOrders),
			fmt.Sprintf("Average Order Value: %.2f", summary.Sales.AverageOrderValue),
			fmt.Sprintf("Total Products: %d", summary.Stock.TotalProducts),
			fmt.Sprintf("Out Of Stock Products: %d", summary.Stock.OutOfStockProducts),
			fmt.Sprintf("Deliveries - Pending: %d  Shipped: %d  Delivered: %d  Cancelled: %d",
				summary.Delivery.Pending, summary.Delivery.Shipped,
				summary.Delivery.Delivered, summary.Delivery.Cancelled),
			fmt.Sprintf("Average Rating: %.2f (%d reviews)",
				summary.Satisfaction.AverageRating, summary.Satisfaction.TotalReviews),
		} {
			pdf.Cell(0, 8, line)
			pdf.Ln(8)
		}

		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Sales By Month")
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 11)
		for _, month := range sortedMonths(summary.Sales.SalesByMonth) {
			pdf.Cell(0, 8, fmt.Sprintf("%s: %.2f", month, summary.Sales.SalesByMonth[month]))
			pdf.Ln(8)
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", `attachment; filename="sales_report.pdf"`)
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write pdf file"})
		}
	}
}
