package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/manager"
	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	_ manager.Repository = (*PGRepository)(nil)
	_ manager.Repository = (*MemoryRepository)(nil)
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func getOne[T any](ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (*T, error) {
	var v T
	if err := db.GetContext(ctx, &v, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// selectWhere runs a named SELECT built from conditions joined with AND.
func selectWhere[T any](ctx context.Context, db *sqlx.DB, table string, conditions []string, args map[string]interface{}, orderBy string, limit int) ([]T, error) {
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}
	query := fmt.Sprintf("SELECT * FROM %s%s ORDER BY %s", table, whereClause, orderBy)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	nstmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var rows []T
	if err := nstmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PGRepository) CreateRetailer(ctx context.Context, v *model.Retailer) error {
	query := `
        INSERT INTO retailers (id, name, contact_email, contact_phone, created_at, updated_at)
        VALUES (:id, :name, :contact_email, :contact_phone, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindRetailerByID(ctx context.Context, id string) (*model.Retailer, error) {
	return getOne[model.Retailer](ctx, r.DB, `SELECT * FROM retailers WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) CreateRetailerLocation(ctx context.Context, v *model.RetailerLocation) error {
	query := `
        INSERT INTO retailer_locations (
            id, retailer_id, name, location_city, location_state, location_country, created_at, updated_at
        )
        VALUES (
            :id, :retailer_id, :name, :location_city, :location_state, :location_country, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindRetailerLocationByID(ctx context.Context, id string) (*model.RetailerLocation, error) {
	return getOne[model.RetailerLocation](ctx, r.DB, `SELECT * FROM retailer_locations WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) CreateProduct(ctx context.Context, v *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, vendor_sku, vendor_confirmation_status, vendor_id, referring_retailer_id,
            referring_retailer_location_id, confirmed_core_product_id, created_at, updated_at
        )
        VALUES (
            :id, :name, :vendor_sku, :vendor_confirmation_status, :vendor_id, :referring_retailer_id,
            :referring_retailer_location_id, :confirmed_core_product_id, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindProductByID(ctx context.Context, id string) (*model.Product, error) {
	return getOne[model.Product](ctx, r.DB, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) CreatePosIntegration(ctx context.Context, v *model.PosIntegration) error {
	query := `
        INSERT INTO pos_integrations (
            id, retailer_id, retailer_location_id, name, url, key, pos_platform, description, created_at, updated_at
        )
        VALUES (
            :id, :retailer_id, :retailer_location_id, :name, :url, :key, :pos_platform, :description, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindPosIntegrations(ctx context.Context, f *dto.PosIntegrationFilters) ([]model.PosIntegration, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.RetailerLocationID != "" {
		conditions = append(conditions, "retailer_location_id = :retailer_location_id")
		args["retailer_location_id"] = f.RetailerLocationID
	}
	if f.PosPlatform != "" {
		conditions = append(conditions, "pos_platform = :pos_platform")
		args["pos_platform"] = string(f.PosPlatform)
	}
	return selectWhere[model.PosIntegration](ctx, r.DB, "pos_integrations", conditions, args, "created_at", 0)
}

// simulatorResponseRow scans jsonb through []byte, which database/sql can assign from either text or bytes.
type simulatorResponseRow struct {
	model.BaseModel
	ResponseStatusCode int                          `db:"response_status_code"`
	ActionType         model.PosSimulatorActionType `db:"action_type"`
	ResponseBody       []byte                       `db:"response_body"`
	Description        *string                      `db:"description"`
}

func (r *PGRepository) CreatePosSimulatorResponse(ctx context.Context, v *model.PosSimulatorResponse) error {
	query := `
        INSERT INTO pos_simulator_responses (
            id, response_status_code, action_type, response_body, description, created_at, updated_at
        )
        VALUES (
            :id, :response_status_code, :action_type, :response_body, :description, :created_at, :updated_at
        )
    `
	row := simulatorResponseRow{
		BaseModel:          v.BaseModel,
		ResponseStatusCode: v.ResponseStatusCode,
		ActionType:         v.ActionType,
		ResponseBody:       v.ResponseBody,
		Description:        v.Description,
	}
	_, err := r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) FindPosSimulatorResponseByID(ctx context.Context, id string) (*model.PosSimulatorResponse, error) {
	row, err := getOne[simulatorResponseRow](ctx, r.DB, `SELECT * FROM pos_simulator_responses WHERE id = $1 LIMIT 1`, id)
	if err != nil || row == nil {
		return nil, err
	}
	return &model.PosSimulatorResponse{
		BaseModel:          row.BaseModel,
		ResponseStatusCode: row.ResponseStatusCode,
		ActionType:         row.ActionType,
		ResponseBody:       row.ResponseBody,
		Description:        row.Description,
	}, nil
}

func (r *PGRepository) CreateInventoryIntakeJob(ctx context.Context, v *model.InventoryIntakeJob) error {
	query := `
        INSERT INTO inventory_intake_jobs (
            id, retailer_id, retailer_location_id, snapshot_hour, parent_batch_job_id,
            simulator_response_id, status, status_details, created_at, updated_at
        )
        VALUES (
            :id, :retailer_id, :retailer_location_id, :snapshot_hour, :parent_batch_job_id,
            :simulator_response_id, :status, :status_details, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindInventoryIntakeJobByID(ctx context.Context, id string) (*model.InventoryIntakeJob, error) {
	return getOne[model.InventoryIntakeJob](ctx, r.DB, `SELECT * FROM inventory_intake_jobs WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) UpdateInventoryIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn []model.IntakeJobStatus) (bool, error) {
	return r.updateJobStatus(ctx, "inventory_intake_jobs", id, u, notIn)
}

func (r *PGRepository) CreateSalesIntakeJob(ctx context.Context, v *model.SalesIntakeJob) error {
	query := `
        INSERT INTO sales_intake_jobs (
            id, retailer_id, retailer_location_id, start_time, end_time, parent_batch_job_id,
            simulator_response_id, status, status_details, created_at, updated_at
        )
        VALUES (
            :id, :retailer_id, :retailer_location_id, :start_time, :end_time, :parent_batch_job_id,
            :simulator_response_id, :status, :status_details, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindSalesIntakeJobByID(ctx context.Context, id string) (*model.SalesIntakeJob, error) {
	return getOne[model.SalesIntakeJob](ctx, r.DB, `SELECT * FROM sales_intake_jobs WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) UpdateSalesIntakeJobStatus(ctx context.Context, id string, u *model.IntakeJobStatusUpdate, notIn []model.IntakeJobStatus) (bool, error) {
	return r.updateJobStatus(ctx, "sales_intake_jobs", id, u, notIn)
}

// updateJobStatus is a compare-and-set: the row is only touched when its status is outside notIn.
func (r *PGRepository) updateJobStatus(ctx context.Context, table, id string, u *model.IntakeJobStatusUpdate, notIn []model.IntakeJobStatus) (bool, error) {
	excluded := make([]string, 0, len(notIn))
	for _, s := range notIn {
		excluded = append(excluded, string(s))
	}

	query := fmt.Sprintf(`
        UPDATE %s
        SET status = $1, status_details = $2, updated_at = $3
        WHERE id = $4 AND status <> ALL($5::text[])
    `, table)
	res, err := r.DB.ExecContext(ctx, query, string(u.Status), u.StatusDetails, time.Now().UTC(), id, excluded)
	if err != nil {
		return false, fmt.Errorf("failed to update %s status: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PGRepository) CreateInventoryProductSnapshot(ctx context.Context, v *model.InventoryProductSnapshot) error {
	query := `
        INSERT INTO inventory_product_snapshots (
            id, retailer_id, retailer_location_id, product_id, vendor_id, inventory_intake_job_id,
            snapshot_hour, sku, stock_on_hand, price, created_at, updated_at
        )
        VALUES (
            :id, :retailer_id, :retailer_location_id, :product_id, :vendor_id, :inventory_intake_job_id,
            :snapshot_hour, :sku, :stock_on_hand, :price, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindInventoryProductSnapshots(ctx context.Context, f *dto.InventoryProductSnapshotFilters) ([]model.InventoryProductSnapshot, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.RetailerLocationID != "" {
		conditions = append(conditions, "retailer_location_id = :retailer_location_id")
		args["retailer_location_id"] = f.RetailerLocationID
	}
	if f.SKU != "" {
		conditions = append(conditions, "sku = :sku")
		args["sku"] = f.SKU
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.InventoryIntakeJobID != "" {
		conditions = append(conditions, "inventory_intake_job_id = :inventory_intake_job_id")
		args["inventory_intake_job_id"] = f.InventoryIntakeJobID
	}
	return selectWhere[model.InventoryProductSnapshot](ctx, r.DB, "inventory_product_snapshots", conditions, args, "created_at", f.Limit)
}

func (r *PGRepository) CreateHistoricalSale(ctx context.Context, v *model.HistoricalSale) error {
	query := `
        INSERT INTO historical_sales (
            id, retailer_id, retailer_location_id, sales_intake_job_id, pos_sale_id, sale_timestamp,
            total, sub_total, discount, tax, cost, created_at, updated_at
        )
        VALUES (
            :id, :retailer_id, :retailer_location_id, :sales_intake_job_id, :pos_sale_id, :sale_timestamp,
            :total, :sub_total, :discount, :tax, :cost, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindHistoricalSaleByID(ctx context.Context, id string) (*model.HistoricalSale, error) {
	return getOne[model.HistoricalSale](ctx, r.DB, `SELECT * FROM historical_sales WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindHistoricalSales(ctx context.Context, f *dto.HistoricalSaleFilters) ([]model.HistoricalSale, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.RetailerLocationID != "" {
		conditions = append(conditions, "retailer_location_id = :retailer_location_id")
		args["retailer_location_id"] = f.RetailerLocationID
	}
	if f.PosSaleID != "" {
		conditions = append(conditions, "pos_sale_id = :pos_sale_id")
		args["pos_sale_id"] = f.PosSaleID
	}
	if f.SalesIntakeJobID != "" {
		conditions = append(conditions, "sales_intake_job_id = :sales_intake_job_id")
		args["sales_intake_job_id"] = f.SalesIntakeJobID
	}
	return selectWhere[model.HistoricalSale](ctx, r.DB, "historical_sales", conditions, args, "sale_timestamp", f.Limit)
}

func (r *PGRepository) CreateHistoricalSaleItem(ctx context.Context, v *model.HistoricalSaleItem) error {
	query := `
        INSERT INTO historical_sale_items (
            id, historical_sale_id, product_id, product_vendor_id, retailer_id, retailer_location_id,
            sales_intake_job_id, sku, sale_count, sale_timestamp, total, sale_product_name, lot_identifier,
            pos_sale_id, pos_product_id, unit_of_weight, weight_in_units, sub_total, discount, tax, cost,
            created_at, updated_at
        )
        VALUES (
            :id, :historical_sale_id, :product_id, :product_vendor_id, :retailer_id, :retailer_location_id,
            :sales_intake_job_id, :sku, :sale_count, :sale_timestamp, :total, :sale_product_name, :lot_identifier,
            :pos_sale_id, :pos_product_id, :unit_of_weight, :weight_in_units, :sub_total, :discount, :tax, :cost,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindHistoricalSaleItems(ctx context.Context, f *dto.HistoricalSaleItemFilters) ([]model.HistoricalSaleItem, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.RetailerLocationID != "" {
		conditions = append(conditions, "retailer_location_id = :retailer_location_id")
		args["retailer_location_id"] = f.RetailerLocationID
	}
	if f.SKU != "" {
		conditions = append(conditions, "sku = :sku")
		args["sku"] = f.SKU
	}
	if f.HistoricalSaleID != "" {
		conditions = append(conditions, "historical_sale_id = :historical_sale_id")
		args["historical_sale_id"] = f.HistoricalSaleID
	}
	if f.SalesIntakeJobID != "" {
		conditions = append(conditions, "sales_intake_job_id = :sales_intake_job_id")
		args["sales_intake_job_id"] = f.SalesIntakeJobID
	}
	return selectWhere[model.HistoricalSaleItem](ctx, r.DB, "historical_sale_items", conditions, args, "created_at", f.Limit)
}
