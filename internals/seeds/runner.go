// file: internals/seeds/runner.go
package seeds

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Summary struct {
	Profiles    int
	Groups      int
	Enrollments int
	Sessions    int
	Invoices    int
}

// RunAllSeeds loads a YAML fixture file and inserts it in one transaction.
// Rows that already exist (same primary or unique key) are left untouched.
func RunAllSeeds(db *gorm.DB, path string) (*Summary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("❌ Gagal baca file %s: %v", path, err)
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	f, err := ParseFixture(b)
	if err != nil {
		log.Printf("❌ Gagal decode fixture: %v", err)
		return nil, err
	}
	ds, err := f.Build()
	if err != nil {
		log.Printf("❌ Fixture tidak valid: %v", err)
		return nil, err
	}

	sum := &Summary{}
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		if sum.Profiles, err = insertAll(tx, ds.Profiles); err != nil {
			return fmt.Errorf("profiles: %w", err)
		}
		// default:true on profile_is_active makes a false value vanish on insert
		for _, p := range ds.Profiles {
			if !p.ProfileIsActive {
				if err := tx.Model(&p).Update("profile_is_active", false).Error; err != nil {
					return fmt.Errorf("deactivate profile %s: %w", p.ProfileID, err)
				}
			}
		}
		if sum.Groups, err = insertAll(tx, ds.Groups); err != nil {
			return fmt.Errorf("groups: %w", err)
		}
		if sum.Enrollments, err = insertAll(tx, ds.Enrollments); err != nil {
			return fmt.Errorf("enrollments: %w", err)
		}
		if sum.Sessions, err = insertAll(tx, ds.Sessions); err != nil {
			return fmt.Errorf("sessions: %w", err)
		}
		if sum.Invoices, err = insertAll(tx, ds.Invoices); err != nil {
			return fmt.Errorf("invoices: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Seeding gagal: %v", err)
		return nil, err
	}

	log.Printf("✅ Seed selesai: %d profiles, %d groups, %d enrollments, %d sessions, %d invoices",
		sum.Profiles, sum.Groups, sum.Enrollments, sum.Sessions, sum.Invoices)
	return sum, nil
}

// insertAll returns how many rows were actually inserted.
func insertAll[T any](tx *gorm.DB, rows []T) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	if skipped := int64(len(rows)) - res.RowsAffected; skipped > 0 {
		log.Printf("ℹ️ %d baris sudah ada, dilewati", skipped)
	}
	return int(res.RowsAffected), nil
}
