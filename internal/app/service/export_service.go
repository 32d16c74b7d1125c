package service

import (
	"strings"

	"github.com/mfarias/listado-precios-backend/internal/app/store"
	"github.com/mfarias/listado-precios-backend/pkg/currency"
	"github.com/mfarias/listado-precios-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the sheet the price listing is written to.
const ExportSheetName = "Listado de Precios"

// ExportService renders the current price listing as an XLSX workbook.
type ExportService interface {
	// BuildWorkbook snapshots the store into a single-sheet workbook: a
	// header row followed by one row per product in store order. The caller
	// owns the returned file and should Close it.
	BuildWorkbook() (*excelize.File, error)
}

type exportService struct {
	store     *store.ProductStore
	formatter *currency.Formatter
}

func NewExportService(productStore *store.ProductStore, formatter *currency.Formatter) ExportService {
	return &exportService{store: productStore, formatter: formatter}
}

func (s *exportService) BuildWorkbook() (*excelize.File, error) {
	products := s.store.All()

	f := excelize.NewFile()
	index, err := f.NewSheet(ExportSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := []interface{}{"ID", "Nombre", "Marca", "Categoría", "Precio", "Precio Formateado", "Características"}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			p.ID,
			p.Name,
			p.Brand,
			p.Category,
			p.CurrentPrice,
			s.formatter.Format(p.CurrentPrice),
			strings.Join(p.Characteristics, ", "),
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	logger.Info("Price listing exported", map[string]interface{}{
		"products": len(products),
	})
	return f, nil
}
