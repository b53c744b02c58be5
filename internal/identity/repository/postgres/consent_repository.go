package postgres

import (
	"context"
	"fmt"
)

// ConsentRepository reads the externally managed consent grants. This core
// never writes to the consents table.
type ConsentRepository struct {
	db DB
}

func NewConsentRepository(db DB) *ConsentRepository {
	return &ConsentRepository{db: db}
}

func (r *ConsentRepository) HasActiveGrant(ctx context.Context, patientID, clinicianID, facilityID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM consents
			WHERE patient_id = $1
			  AND status = 'active'
			  AND (expires_at IS NULL OR expires_at > now())
			  AND (clinician_id = NULLIF($2, '')::uuid OR facility_id = NULLIF($3, '')::uuid)
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, patientID, clinicianID, facilityID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check consent grant: %w", err)
	}

	return exists, nil
}
