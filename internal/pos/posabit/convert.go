package posabit

import (
	"strings"

	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/fekuna/omnipos-intake-service/internal/pos"
)

var unitsOfWeight = map[string]model.UnitOfWeight{
	"mg":          model.UnitMilligrams,
	"milligram":   model.UnitMilligrams,
	"milligrams":  model.UnitMilligrams,
	"g":           model.UnitGrams,
	"gram":        model.UnitGrams,
	"grams":       model.UnitGrams,
	"kg":          model.UnitKilograms,
	"kilogram":    model.UnitKilograms,
	"kilograms":   model.UnitKilograms,
	"lb":          model.UnitPounds,
	"lbs":         model.UnitPounds,
	"pound":       model.UnitPounds,
	"pounds":      model.UnitPounds,
	"oz":          model.UnitOunces,
	"ounce":       model.UnitOunces,
	"ounces":      model.UnitOunces,
	"floz":        model.UnitFluidOunces,
	"fl oz":       model.UnitFluidOunces,
	"fluidounces": model.UnitFluidOunces,
	"pt":          model.UnitPints,
	"pint":        model.UnitPints,
	"pints":       model.UnitPints,
	"qt":          model.UnitQuarts,
	"quart":       model.UnitQuarts,
	"quarts":      model.UnitQuarts,
	"gal":         model.UnitGallons,
	"gallon":      model.UnitGallons,
	"gallons":     model.UnitGallons,
	"l":           model.UnitLiters,
	"liter":       model.UnitLiters,
	"liters":      model.UnitLiters,
	"ml":          model.UnitMilliliters,
	"milliliter":  model.UnitMilliliters,
	"milliliters": model.UnitMilliliters,
}

// parseUnitOfWeight returns nil for units with no known mapping.
func parseUnitOfWeight(raw *string) *model.UnitOfWeight {
	if raw == nil {
		return nil
	}
	u, ok := unitsOfWeight[strings.ToLower(strings.TrimSpace(*raw))]
	if !ok {
		return nil
	}
	return &u
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func amount(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func toGenericInventoryRecord(item inventoryItem) pos.GenericInventoryRecord {
	return pos.GenericInventoryRecord{
		SKU:            str(item.SKU),
		StockOnHand:    item.QuantityOnHand,
		Price:          amount(item.Price),
		ProductName:    str(item.Name),
		ListedVendor:   str(item.Vendor),
		ListedBrand:    str(item.Brand),
		ListedCategory: str(item.Category),
	}
}

func toGenericHistoricalSale(sale salesHistory) pos.GenericHistoricalSale {
	out := pos.GenericHistoricalSale{
		PosSaleID:     string(sale.ID),
		SaleTimestamp: sale.OrderedAt,
		Total:         amount(sale.Total),
		SubTotal:      sale.SubTotal,
		Discount:      sale.Discount,
		Tax:           sale.Tax,
		Cost:          sale.Cost,
		Items:         make([]pos.GenericHistoricalSaleItem, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		out.Items = append(out.Items, toGenericHistoricalSaleItem(item, sale))
	}
	return out
}

func toGenericHistoricalSaleItem(item salesHistoryItem, sale salesHistory) pos.GenericHistoricalSaleItem {
	return pos.GenericHistoricalSaleItem{
		SKU:             str(item.SKU),
		Quantity:        item.Quantity,
		SaleTimestamp:   sale.OrderedAt,
		Total:           amount(item.Total),
		ProductName:     item.ProductName,
		SaleProductName: item.ProductName,
		ListedBrand:     item.Brand,
		ListedCategory:  item.Category,
		LotIdentifier:   item.LotNumber,
		PosSaleID:       item.SalesHistoryID.ptr(),
		PosProductID:    item.ProductID.ptr(),
		UnitOfWeight:    parseUnitOfWeight(item.UnitOfWeight),
		WeightInUnits:   item.Weight,
		SubTotal:        item.SubTotal,
		Discount:        item.Discount,
		Tax:             item.Tax,
		Cost:            item.Cost,
	}
}
