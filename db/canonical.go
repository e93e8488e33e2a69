package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cloudcost/core/focus"
	"cloudcost/internal/errors"
)

// DeleteWindow removes canonical rows whose charge period starts inside
// [start, end) for the given source systems. It returns the number of rows
// removed. Running delete and insert in the same transaction is what makes a
// re-run idempotent.
func (s *Store) DeleteWindow(ctx context.Context, tx *sql.Tx, start, end time.Time, sourceSystems []string) (int64, error) {
	if len(sourceSystems) == 0 {
		return 0, errors.Validation("delete window requires at least one source system")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(sourceSystems)), ", ")
	query := s.rebind(fmt.Sprintf(
		`DELETE FROM %s WHERE charge_period_start >= ? AND charge_period_start < ? AND source_system IN (%s)`,
		s.tables.Canonical, placeholders))

	args := make([]interface{}, 0, len(sourceSystems)+2)
	args = append(args, formatTime(start), formatTime(end))
	for _, system := range sourceSystems {
		args = append(args, system)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Storage("deleting canonical window", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Storage("counting deleted rows", err)
	}
	return deleted, nil
}

// InsertRecords writes canonical records inside the given transaction
func (s *Store) InsertRecords(ctx context.Context, tx *sql.Tx, records []focus.Record) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(canonicalColumns)), ", ")
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		s.tables.Canonical, strings.Join(canonicalColumns, ", "), placeholders))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return errors.Storage("preparing canonical insert", err)
	}
	defer stmt.Close()

	for i := range records {
		args, err := insertArgs(&records[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return errors.Storage("inserting canonical record", err)
		}
	}
	return nil
}

func insertArgs(rec *focus.Record) ([]interface{}, error) {
	skuDetails, err := marshalJSONMap(rec.SkuPriceDetails)
	if err != nil {
		return nil, errors.Storage("encoding sku price details", err)
	}
	tags, err := marshalTags(rec.Tags)
	if err != nil {
		return nil, errors.Storage("encoding tags", err)
	}

	var chargeClass interface{}
	if rec.ChargeClass != nil {
		chargeClass = string(*rec.ChargeClass)
	}
	var commitmentID, commitmentName, commitmentType interface{}
	if rec.CommitmentDiscountID != nil {
		commitmentID = *rec.CommitmentDiscountID
		commitmentName = *rec.CommitmentDiscountName
		commitmentType = string(*rec.CommitmentDiscountType)
	}

	var hierID, hierName, hierLevel, hierPath, hierPathNames, hierValidatedAt interface{}
	if rec.Hierarchy != nil {
		hierID = rec.Hierarchy.EntityID
		hierName = rec.Hierarchy.EntityName
		hierLevel = rec.Hierarchy.LevelCode
		hierPath = rec.Hierarchy.Path
		hierPathNames = rec.Hierarchy.PathNames
		hierValidatedAt = formatTime(rec.Hierarchy.ValidatedAt)
	}

	return []interface{}{
		uuid.NewString(),
		rec.BillingAccountID,
		rec.SubAccountID,
		rec.SubAccountName,
		formatTime(rec.ChargePeriodStart),
		formatTime(rec.ChargePeriodEnd),
		formatTime(rec.BillingPeriodStart),
		formatTime(rec.BillingPeriodEnd),
		rec.InvoiceIssuerName,
		rec.ServiceProviderName,
		rec.HostProviderName,
		string(rec.ServiceCategory),
		rec.ServiceName,
		rec.ServiceSubcategory,
		rec.ResourceID,
		rec.ResourceName,
		rec.ResourceType,
		rec.RegionID,
		rec.RegionName,
		rec.ConsumedQuantity.String(),
		rec.ConsumedUnit,
		string(rec.PricingCategory),
		rec.PricingUnit,
		rec.PricingQuantity.String(),
		rec.ListUnitPrice.String(),
		rec.ContractedUnitPrice.String(),
		rec.ListCost.String(),
		rec.ContractedCost.String(),
		rec.BilledCost.String(),
		rec.EffectiveCost.String(),
		rec.BillingCurrency,
		string(rec.ChargeCategory),
		chargeClass,
		rec.ChargeType,
		string(rec.ChargeFrequency),
		commitmentID,
		commitmentName,
		commitmentType,
		rec.SkuID,
		skuDetails,
		tags,
		hierID,
		hierName,
		hierLevel,
		hierPath,
		hierPathNames,
		hierValidatedAt,
		rec.Lineage.SourceSystem,
		rec.Lineage.SourceRecordID,
		formatTime(rec.Lineage.UpdatedAt),
		string(rec.Lineage.CloudProvider),
		rec.Lineage.CloudAccountID,
		rec.Lineage.PipelineID,
		rec.Lineage.CredentialID,
		rec.Lineage.PipelineRunDate,
		rec.Lineage.RunID,
		formatTime(rec.Lineage.IngestedAt),
	}, nil
}

// QueryWindow reads canonical rows back for a charge window, ordered by
// source record for stable comparison
func (s *Store) QueryWindow(ctx context.Context, start, end time.Time, sourceSystems []string) ([]focus.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE charge_period_start >= ? AND charge_period_start < ?`,
		strings.Join(canonicalColumns[1:], ", "), s.tables.Canonical)
	args := []interface{}{formatTime(start), formatTime(end)}
	if len(sourceSystems) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(sourceSystems)), ", ")
		query += fmt.Sprintf(" AND source_system IN (%s)", placeholders)
		for _, system := range sourceSystems {
			args = append(args, system)
		}
	}
	query += " ORDER BY source_system, source_record_id"

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, errors.Storage("querying canonical window", err)
	}
	defer rows.Close()

	var records []focus.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterating canonical rows", err)
	}
	return records, nil
}

// CountWindow returns how many canonical rows sit inside a charge window
func (s *Store) CountWindow(ctx context.Context, start, end time.Time) (int64, error) {
	query := s.rebind(fmt.Sprintf(
		`SELECT COUNT(1) FROM %s WHERE charge_period_start >= ? AND charge_period_start < ?`,
		s.tables.Canonical))
	var count int64
	if err := s.db.QueryRowContext(ctx, query, formatTime(start), formatTime(end)).Scan(&count); err != nil {
		return 0, errors.Storage("counting canonical window", err)
	}
	return count, nil
}

func scanRecord(rows *sql.Rows) (focus.Record, error) {
	var rec focus.Record
	var (
		chargeStart, chargeEnd, billingStart, billingEnd  string
		consumedQty, pricingQty, listUnit, contractedUnit string
		listCost, contractedCost, billedCost, effective   string
		chargeClass, commitmentID, commitmentName         sql.NullString
		commitmentType, skuDetails, tags                  sql.NullString
		hierID, hierName, hierLevel                       sql.NullString
		hierPath, hierPathNames, hierValidatedAt          sql.NullString
		provider, updatedAt, ingestedAt                   string
	)

	err := rows.Scan(
		&rec.BillingAccountID,
		&rec.SubAccountID,
		&rec.SubAccountName,
		&chargeStart,
		&chargeEnd,
		&billingStart,
		&billingEnd,
		&rec.InvoiceIssuerName,
		&rec.ServiceProviderName,
		&rec.HostProviderName,
		&rec.ServiceCategory,
		&rec.ServiceName,
		&rec.ServiceSubcategory,
		&rec.ResourceID,
		&rec.ResourceName,
		&rec.ResourceType,
		&rec.RegionID,
		&rec.RegionName,
		&consumedQty,
		&rec.ConsumedUnit,
		&rec.PricingCategory,
		&rec.PricingUnit,
		&pricingQty,
		&listUnit,
		&contractedUnit,
		&listCost,
		&contractedCost,
		&billedCost,
		&effective,
		&rec.BillingCurrency,
		&rec.ChargeCategory,
		&chargeClass,
		&rec.ChargeType,
		&rec.ChargeFrequency,
		&commitmentID,
		&commitmentName,
		&commitmentType,
		&rec.SkuID,
		&skuDetails,
		&tags,
		&hierID,
		&hierName,
		&hierLevel,
		&hierPath,
		&hierPathNames,
		&hierValidatedAt,
		&rec.Lineage.SourceSystem,
		&rec.Lineage.SourceRecordID,
		&updatedAt,
		&provider,
		&rec.Lineage.CloudAccountID,
		&rec.Lineage.PipelineID,
		&rec.Lineage.CredentialID,
		&rec.Lineage.PipelineRunDate,
		&rec.Lineage.RunID,
		&ingestedAt,
	)
	if err != nil {
		return rec, errors.Storage("scanning canonical record", err)
	}

	rec.ChargePeriodStart = parseTime(chargeStart)
	rec.ChargePeriodEnd = parseTime(chargeEnd)
	rec.BillingPeriodStart = parseTime(billingStart)
	rec.BillingPeriodEnd = parseTime(billingEnd)
	rec.ConsumedQuantity = mustDecimal(consumedQty)
	rec.PricingQuantity = mustDecimal(pricingQty)
	rec.ListUnitPrice = mustDecimal(listUnit)
	rec.ContractedUnitPrice = mustDecimal(contractedUnit)
	rec.ListCost = mustDecimal(listCost)
	rec.ContractedCost = mustDecimal(contractedCost)
	rec.BilledCost = mustDecimal(billedCost)
	rec.EffectiveCost = mustDecimal(effective)
	rec.Lineage.UpdatedAt = parseTime(updatedAt)
	rec.Lineage.IngestedAt = parseTime(ingestedAt)
	rec.Lineage.CloudProvider = focus.Provider(provider)

	if chargeClass.Valid {
		c := focus.ChargeClass(chargeClass.String)
		rec.ChargeClass = &c
	}
	if commitmentID.Valid {
		rec.SetCommitment(commitmentID.String, commitmentName.String, focus.CommitmentDiscountType(commitmentType.String))
	}
	if hierID.Valid {
		rec.Hierarchy = &focus.HierarchyAttribution{
			EntityID:    hierID.String,
			EntityName:  hierName.String,
			LevelCode:   hierLevel.String,
			Path:        hierPath.String,
			PathNames:   hierPathNames.String,
			ValidatedAt: parseTime(hierValidatedAt.String),
		}
	}
	if skuDetails.Valid && skuDetails.String != "" {
		_ = json.Unmarshal([]byte(skuDetails.String), &rec.SkuPriceDetails)
	}
	if tags.Valid && tags.String != "" {
		_ = json.Unmarshal([]byte(tags.String), &rec.Tags)
	}
	return rec, nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func marshalJSONMap(m map[string]interface{}) (interface{}, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func marshalTags(m map[string]string) (interface{}, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
