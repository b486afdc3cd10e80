package utils

import (
	"fmt"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"
	"gorm.io/gorm"
)

// RepairPageOrders renumbers the pages of every report whose pageOrder values
// are not a dense 1..N sequence. Damaged orderings can be left behind by
// interrupted writes; survivors keep their relative order (ties broken by
// creation time) and are rewritten sequentially.
func RepairPageOrders(db *gorm.DB) error {
	damaged, err := findDamagedReports(db)
	if err != nil {
		return err
	}

	repairedCount := 0
	for _, reportID := range damaged {
		err := db.Transaction(func(tx *gorm.DB) error {
			var pages []gormmodels.ReportPage
			if err := tx.Where("report_id = ?", reportID).
				Order("page_order ASC, created_at ASC").
				Find(&pages).Error; err != nil {
				return fmt.Errorf("failed to fetch pages: %w", err)
			}

			for i := range pages {
				if err := tx.Model(&pages[i]).Update("page_order", i+1).Error; err != nil {
					return fmt.Errorf("failed to renumber page %s: %w", pages[i].ID, err)
				}
			}
			return nil
		})
		if err != nil {
			fmt.Printf("Warning: failed to repair report %s: %v\n", reportID, err)
			continue
		}
		repairedCount++
		fmt.Printf("Repaired page ordering for report %s\n", reportID)
	}

	fmt.Printf("Successfully repaired %d report(s)\n", repairedCount)
	return nil
}

// RepairPageOrdersDryRun reports damaged orderings without making changes.
func RepairPageOrdersDryRun(db *gorm.DB) error {
	damaged, err := findDamagedReports(db)
	if err != nil {
		return err
	}

	fmt.Printf("DRY RUN: would repair %d report(s):\n", len(damaged))
	for _, reportID := range damaged {
		var orders []int
		if err := db.Model(&gormmodels.ReportPage{}).
			Where("report_id = ?", reportID).
			Order("page_order ASC").
			Pluck("page_order", &orders).Error; err != nil {
			return fmt.Errorf("failed to fetch page orders: %w", err)
		}
		fmt.Printf("  %s: orders %v\n", reportID, orders)
	}

	return nil
}

func findDamagedReports(db *gorm.DB) ([]string, error) {
	var reports []gormmodels.Report
	if err := db.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	var damaged []string
	for _, report := range reports {
		var orders []int
		if err := db.Model(&gormmodels.ReportPage{}).
			Where("report_id = ?", report.ID).
			Order("page_order ASC").
			Pluck("page_order", &orders).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch page orders: %w", err)
		}

		if !isDense(orders) {
			damaged = append(damaged, report.ID)
		}
	}

	return damaged, nil
}

func isDense(orders []int) bool {
	for i, order := range orders {
		if order != i+1 {
			return false
		}
	}
	return true
}
