package pdfexport

import (
	"quotation-backend/models"
	dbmodels "quotation-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateQuotationSummary(t *testing.T) {
	t.Run("summary with items and history", func(t *testing.T) {
		created := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
		rec := dbmodels.Quotation{
			BaseModel:    dbmodels.BaseModel{ID: 7, CreatedAt: created},
			Number:       "COT-000007",
			Status:       models.QuotationSent,
			ClientName:   "José Núñez",
			DocumentType: "DNI",
			Document:     "12345678",
			Email:        "jose@example.com",
			Observations: "Precio válido por 15 días",
		}
		items := []dbmodels.QuotationItem{
			{ProductName: "Cámara IP", Quantity: 2},
			{ProductName: "Switch 8 puertos", Quantity: 1},
		}
		history := []dbmodels.QuotationStatusChange{
			{
				BaseModel:      dbmodels.BaseModel{CreatedAt: created},
				PreviousStatus: models.QuotationPending,
				NewStatus:      models.QuotationInProgress,
				UserName:       "Admin",
			},
		}
		data, err := GenerateQuotationSummary(rec, items, history)
		require.Nil(t, err)
		require.True(t, len(data) > 0)
		require.Equal(t, "%PDF", string(data[:4]))
	})
	t.Run("summary without items", func(t *testing.T) {
		data, err := GenerateQuotationSummary(dbmodels.Quotation{Number: "COT-000001", Status: models.QuotationPending}, nil, nil)
		require.Nil(t, err)
		require.Equal(t, "%PDF", string(data[:4]))
	})
}
