package repository

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-intake-service/internal/manager/dto"
	"github.com/fekuna/omnipos-intake-service/internal/model"
)

func TestMemoryCreateHistoricalSaleRejectsDuplicatePosSale(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	sale := func(id, location, posSaleID string) *model.HistoricalSale {
		return &model.HistoricalSale{
			BaseModel:          model.BaseModel{ID: id},
			RetailerLocationID: location,
			PosSaleID:          posSaleID,
		}
	}

	if err := repo.CreateHistoricalSale(ctx, sale("s1", "loc-1", "1001")); err != nil {
		t.Fatalf("first sale: %v", err)
	}
	if err := repo.CreateHistoricalSale(ctx, sale("s2", "loc-1", "1001")); err == nil {
		t.Fatal("expected duplicate (location, pos sale id) to be rejected")
	}
	if err := repo.CreateHistoricalSale(ctx, sale("s3", "loc-2", "1001")); err != nil {
		t.Fatalf("same pos sale id at another location: %v", err)
	}

	got, err := repo.FindHistoricalSales(ctx, &dto.HistoricalSaleFilters{PosSaleID: "1001"})
	if err != nil {
		t.Fatalf("FindHistoricalSales: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 stored sales, got %d", len(got))
	}
}
