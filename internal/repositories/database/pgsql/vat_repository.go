package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/helvetibooks/fibu_backend/internal/apperrors"
	"github.com/helvetibooks/fibu_backend/internal/core/domain"
	portsrepo "github.com/helvetibooks/fibu_backend/internal/core/ports/repositories"
	"github.com/helvetibooks/fibu_backend/internal/models"
	"github.com/helvetibooks/fibu_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vatReturnColumns = `return_id, company_id, return_number, vat_number, year, period_kind, period_index, method, status,
	total_revenue, revenue_standard, revenue_reduced, revenue_special, revenue_exempt, revenue_other,
	output_tax_standard, output_tax_reduced, output_tax_special,
	input_tax_material, input_tax_investments, input_tax_services,
	total_output_tax, total_input_tax, net_payable,
	notes, calculated_at, submitted_at, submission_method, submission_reference,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxVatReturnRepository struct {
	pool *pgxpool.Pool
}

// newPgxVatReturnRepository creates a new repository for VAT return data.
func newPgxVatReturnRepository(pool *pgxpool.Pool) portsrepo.VatReturnRepositoryFacade {
	return &PgxVatReturnRepository{pool: pool}
}

// Ensure PgxVatReturnRepository implements portsrepo.VatReturnRepositoryFacade
var _ portsrepo.VatReturnRepositoryFacade = (*PgxVatReturnRepository)(nil)

func scanVatReturn(row pgx.Row) (models.VatReturn, error) {
	var m models.VatReturn
	err := row.Scan(
		&m.ReturnID,
		&m.CompanyID,
		&m.ReturnNumber,
		&m.VatNumber,
		&m.Year,
		&m.PeriodKind,
		&m.PeriodIndex,
		&m.Method,
		&m.Status,
		&m.TotalRevenue,
		&m.RevenueStandard,
		&m.RevenueReduced,
		&m.RevenueSpecial,
		&m.RevenueExempt,
		&m.RevenueOther,
		&m.OutputTaxStandard,
		&m.OutputTaxReduced,
		&m.OutputTaxSpecial,
		&m.InputTaxMaterial,
		&m.InputTaxInvestments,
		&m.InputTaxServices,
		&m.TotalOutputTax,
		&m.TotalInputTax,
		&m.NetPayable,
		&m.Notes,
		&m.CalculatedAt,
		&m.SubmittedAt,
		&m.SubmissionMethod,
		&m.SubmissionReference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReturn persists a new return. The partial unique index on the period
// columns surfaces as ErrDuplicate.
func (r *PgxVatReturnRepository) SaveReturn(ctx context.Context, ret domain.VatReturn) error {
	m := mapping.ToModelVatReturn(ret)

	query := `
		INSERT INTO vat_returns (` + vatReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ReturnID, m.CompanyID, m.ReturnNumber, m.VatNumber, m.Year, m.PeriodKind, m.PeriodIndex, m.Method, m.Status,
		m.TotalRevenue, m.RevenueStandard, m.RevenueReduced, m.RevenueSpecial, m.RevenueExempt, m.RevenueOther,
		m.OutputTaxStandard, m.OutputTaxReduced, m.OutputTaxSpecial,
		m.InputTaxMaterial, m.InputTaxInvestments, m.InputTaxServices,
		m.TotalOutputTax, m.TotalInputTax, m.NetPayable,
		m.Notes, m.CalculatedAt, m.SubmittedAt, m.SubmissionMethod, m.SubmissionReference,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: a VAT return already exists for this period", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save VAT return %s: %w", m.ReturnID, err)
	}
	return nil
}

// FindReturnByID retrieves a return within a company.
func (r *PgxVatReturnRepository) FindReturnByID(ctx context.Context, companyID, returnID string) (*domain.VatReturn, error) {
	query := `
		SELECT ` + vatReturnColumns + `
		FROM vat_returns
		WHERE company_id = $1 AND return_id = $2;
	`
	m, err := scanVatReturn(r.pool.QueryRow(ctx, query, companyID, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find VAT return by ID %s: %w", returnID, err)
	}

	d := mapping.ToDomainVatReturn(m)
	return &d, nil
}

// FindReturnByPeriod retrieves the return covering a specific settlement period.
func (r *PgxVatReturnRepository) FindReturnByPeriod(ctx context.Context, companyID string, year int, kind domain.VatPeriodKind, periodIndex int) (*domain.VatReturn, error) {
	query := `
		SELECT ` + vatReturnColumns + `
		FROM vat_returns
		WHERE company_id = $1 AND year = $2 AND period_kind = $3 AND period_index = $4;
	`
	m, err := scanVatReturn(r.pool.QueryRow(ctx, query, companyID, year, string(kind), periodIndex))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find VAT return for period %d/%s/%d: %w", year, kind, periodIndex, err)
	}

	d := mapping.ToDomainVatReturn(m)
	return &d, nil
}

// ListReturnsByCompany retrieves all returns of a company, newest period first.
func (r *PgxVatReturnRepository) ListReturnsByCompany(ctx context.Context, companyID string) ([]domain.VatReturn, error) {
	query := `
		SELECT ` + vatReturnColumns + `
		FROM vat_returns
		WHERE company_id = $1
		ORDER BY year DESC, period_kind, period_index DESC;
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query VAT returns for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelReturns := []models.VatReturn{}
	for rows.Next() {
		m, scanErr := scanVatReturn(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan VAT return row for company %s: %w", companyID, scanErr)
		}
		modelReturns = append(modelReturns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating VAT return rows for company %s: %w", companyID, err)
	}

	return mapping.ToDomainVatReturnSlice(modelReturns), nil
}

// UpdateReturn persists the full state of an existing return.
func (r *PgxVatReturnRepository) UpdateReturn(ctx context.Context, ret domain.VatReturn) error {
	m := mapping.ToModelVatReturn(ret)

	query := `
		UPDATE vat_returns
		SET status = $3,
		    total_revenue = $4, revenue_standard = $5, revenue_reduced = $6, revenue_special = $7, revenue_exempt = $8, revenue_other = $9,
		    output_tax_standard = $10, output_tax_reduced = $11, output_tax_special = $12,
		    input_tax_material = $13, input_tax_investments = $14, input_tax_services = $15,
		    total_output_tax = $16, total_input_tax = $17, net_payable = $18,
		    notes = $19, calculated_at = $20, submitted_at = $21, submission_method = $22, submission_reference = $23,
		    last_updated_at = $24, last_updated_by = $25
		WHERE company_id = $1 AND return_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.CompanyID, m.ReturnID, m.Status,
		m.TotalRevenue, m.RevenueStandard, m.RevenueReduced, m.RevenueSpecial, m.RevenueExempt, m.RevenueOther,
		m.OutputTaxStandard, m.OutputTaxReduced, m.OutputTaxSpecial,
		m.InputTaxMaterial, m.InputTaxInvestments, m.InputTaxServices,
		m.TotalOutputTax, m.TotalInputTax, m.NetPayable,
		m.Notes, m.CalculatedAt, m.SubmittedAt, m.SubmissionMethod, m.SubmissionReference,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update VAT return %s: %w", m.ReturnID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteReturn removes a return.
func (r *PgxVatReturnRepository) DeleteReturn(ctx context.Context, companyID, returnID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM vat_returns WHERE company_id = $1 AND return_id = $2;`, companyID, returnID)
	if err != nil {
		return fmt.Errorf("failed to delete VAT return %s: %w", returnID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
