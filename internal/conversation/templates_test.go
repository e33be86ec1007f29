package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imobiliariaxyz/bot-corretor/internal/catalog"
)

func TestWelcomeGreetingFollowsTimeOfDay(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
	}

	assert.Contains(t, welcomeMessage("Ana", at(8)), "Bom dia, Ana!")
	assert.Contains(t, welcomeMessage("Ana", at(14)), "Boa tarde, Ana!")
	assert.Contains(t, welcomeMessage("Ana", at(21)), "Boa noite, Ana!")
	assert.Contains(t, welcomeMessage("", at(8)), "Bom dia, Cliente!")
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{2800, "2.800"},
		{450000, "450.000"},
		{2200000, "2.200.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.in))
	}
}

func TestFormatPriceMarksRentAsMonthly(t *testing.T) {
	assert.Equal(t, "R$ 850.000", formatPrice(850000, catalog.TransactionSale))
	assert.Equal(t, "R$ 2.800/mês", formatPrice(2800, catalog.TransactionRent))
}

func TestPropertyCardShowsCodeAndPrice(t *testing.T) {
	card := propertyCard(catalog.Property{
		Code:        "APV002",
		Transaction: catalog.TransactionSale,
		Title:       "Apartamento Garden na Lagoa",
		Address:     "Av. das Rendeiras, 200 - Lagoa da Conceição",
		Price:       850000,
		Area:        120,
		Bedrooms:    3,
		Bathrooms:   2,
		Parking:     2,
		Description: "Garden com quintal privativo.",
		Features:    []string{"Quintal privativo", "Churrasqueira"},
	})

	assert.Contains(t, card, "APV002")
	assert.Contains(t, card, "R$ 850.000")
	assert.Contains(t, card, "• Quintal privativo")
	assert.Contains(t, card, "120m²")
}
