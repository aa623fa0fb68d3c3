package process

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion"
	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
)

type ReferenceSource string

const (
	SourceInventoryProductSnapshot ReferenceSource = "inventory_product_snapshot"
	SourceHistoricalSaleItem       ReferenceSource = "historical_sale_item"
)

type ProductReference struct {
	ProductID string
	Source    ReferenceSource
}

type ProductReferenceFinder interface {
	SearchInventoryProductSnapshots(ctx context.Context, f *dto.InventoryProductSnapshotFilters) ([]model.InventoryProductSnapshot, error)
	SearchHistoricalSaleItems(ctx context.Context, f *dto.HistoricalSaleItemFilters) ([]model.HistoricalSaleItem, error)
}

// FindExistingProductReference looks for a prior observation of sku at the location.
// Inventory snapshots are checked before sale items. Returns nil, nil when neither has one.
func FindExistingProductReference(ctx context.Context, finder ProductReferenceFinder, retailerLocationID, sku string) (*ProductReference, error) {
	snapshots, err := finder.SearchInventoryProductSnapshots(ctx, &dto.InventoryProductSnapshotFilters{
		RetailerLocationID: retailerLocationID,
		SKU:                sku,
		Limit:              1,
	})
	if err != nil {
		return nil, fmt.Errorf("search inventory snapshots: %w", err)
	}
	if len(snapshots) > 0 {
		return &ProductReference{ProductID: snapshots[0].ProductID, Source: SourceInventoryProductSnapshot}, nil
	}

	items, err := finder.SearchHistoricalSaleItems(ctx, &dto.HistoricalSaleItemFilters{
		RetailerLocationID: retailerLocationID,
		SKU:                sku,
		Limit:              1,
	})
	if err != nil {
		return nil, fmt.Errorf("search historical sale items: %w", err)
	}
	if len(items) > 0 {
		return &ProductReference{ProductID: items[0].ProductID, Source: SourceHistoricalSaleItem}, nil
	}
	return nil, nil
}

// resolveProduct links sku to a known product or creates a Candidate for it.
func resolveProduct(ctx context.Context, mgr ingestion.Manager, retailerLocationID, sku, name string) (*model.Product, Outcome, error) {
	ref, err := FindExistingProductReference(ctx, mgr, retailerLocationID, sku)
	if err != nil {
		return nil, "", err
	}

	if ref == nil {
		if name == "" {
			name = sku
		}
		p, err := mgr.CreateProduct(ctx, &model.ProductCreate{
			Name:                        name,
			VendorConfirmationStatus:    model.VendorConfirmationCandidate,
			ReferringRetailerLocationID: &retailerLocationID,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create candidate product: %w", err)
		}
		return p, OutcomeCreated, nil
	}

	p, err := mgr.GetProductByID(ctx, ref.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("load product %s: %w", ref.ProductID, err)
	}
	if p == nil {
		return nil, "", fmt.Errorf("product %s referenced by %s: %w", ref.ProductID, ref.Source, ingestion.ErrParentNotFound)
	}
	return p, OutcomeLinked, nil
}
