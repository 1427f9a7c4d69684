package presentation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rentdash/internal/models"
)

// Money renders an amount with two decimals, rounding half away from zero.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// SummaryLines are the bullet points shown above the data table.
func SummaryLines(stats models.SummaryStats) []string {
	return []string{
		fmt.Sprintf("Aluguel Médio: R$ %s", Money(stats.AverageRent)),
		fmt.Sprintf("Custo Total Médio: R$ %s", Money(stats.AverageTotalCost)),
		fmt.Sprintf("Média de Aluguel por M²: R$ %s", Money(stats.RentPerArea)),
		fmt.Sprintf("Porcentagem de Imóveis que Aceitam Animais: %s%%", Money(stats.PercentAccepting)),
		fmt.Sprintf("Quantidade de Imóveis: %d", stats.Count),
	}
}
