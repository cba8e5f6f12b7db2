package services

import (
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// Service levels accepted by the postal tariff table.
const (
	ServiceStandard   = "standard"
	ServiceExpress    = "express"
	ServiceRegistered = "registered"
)

// Destination zones accepted by the postal tariff table.
const (
	ZoneDomestic      = "domestic"
	ZoneEU            = "eu"
	ZoneInternational = "international"
)

// MaxWeightGrams is the heaviest parcel the postal services accept.
const MaxWeightGrams = 30000

// TariffQuote is the result of a tariff lookup: the postal service's charge
// (cost, COGS) and the price charged to the customer (revenue).
type TariffQuote struct {
	Cost    kernel.Money
	Revenue kernel.Money
}

// Margin returns revenue minus cost.
func (q TariffQuote) Margin() kernel.Money {
	return q.Revenue.Sub(q.Cost)
}

// TariffCalculator is a domain service computing postal tariffs.
// Quote is a pure function of weight, service level and destination zone: no
// I/O, no side effects, deterministic. It must be called before any ledger
// mutation so that a rejected quote never touches the balance.
//
// Example usage:
//
//	calc := services.NewTariffCalculator()
//	quote, err := calc.Quote(500, services.ServiceRegistered, services.ZoneDomestic)
//	if err != nil {
//	    // unsupported service, zone or weight
//	}
//	// quote.Cost is what the postal service charges, quote.Revenue the customer price
type TariffCalculator struct{}

// NewTariffCalculator creates a new TariffCalculator instance.
func NewTariffCalculator() TariffCalculator {
	return TariffCalculator{}
}

// rate holds the per-band tariff in cents: what the postal service charges and
// what the customer pays.
type rate struct {
	costCents    int64
	revenueCents int64
}

// tariffTable returns the static rate table keyed by service, zone and weight
// band. Weight bands are the upper bounds in grams, checked in ascending order.
func tariffTable() map[string]map[string][]struct {
	maxGrams int
	rate     rate
} {
	band := func(maxGrams int, costCents, revenueCents int64) struct {
		maxGrams int
		rate     rate
	} {
		return struct {
			maxGrams int
			rate     rate
		}{maxGrams: maxGrams, rate: rate{costCents: costCents, revenueCents: revenueCents}}
	}

	return map[string]map[string][]struct {
		maxGrams int
		rate     rate
	}{
		ServiceStandard: {
			ZoneDomestic:      {band(1000, 350, 500), band(5000, 550, 800), band(MaxWeightGrams, 900, 1300)},
			ZoneEU:            {band(1000, 750, 1100), band(5000, 1150, 1700), band(MaxWeightGrams, 1900, 2800)},
			ZoneInternational: {band(1000, 1250, 1900), band(5000, 1950, 2900), band(MaxWeightGrams, 3200, 4700)},
		},
		ServiceExpress: {
			ZoneDomestic:      {band(1000, 600, 900), band(5000, 900, 1350), band(MaxWeightGrams, 1500, 2200)},
			ZoneEU:            {band(1000, 1300, 1950), band(5000, 1950, 2900), band(MaxWeightGrams, 3300, 4900)},
			ZoneInternational: {band(1000, 2200, 3300), band(5000, 3400, 5100), band(MaxWeightGrams, 5600, 8300)},
		},
		ServiceRegistered: {
			ZoneDomestic:      {band(1000, 500, 750), band(5000, 750, 1150), band(MaxWeightGrams, 1250, 1900)},
			ZoneEU:            {band(1000, 1050, 1600), band(5000, 1600, 2400), band(MaxWeightGrams, 2700, 4000)},
			ZoneInternational: {band(1000, 1800, 2700), band(5000, 2800, 4200), band(MaxWeightGrams, 4600, 6900)},
		},
	}
}

// Quote computes the tariff for a parcel.
// Returns a validation error for unsupported services or zones, non-positive
// weights, or weights above MaxWeightGrams.
func (c TariffCalculator) Quote(weightGrams int, service string, destination string) (TariffQuote, error) {
	if weightGrams <= 0 {
		return TariffQuote{}, errs.NewValueIsInvalidErrorWithCause(
			"weightGrams",
			fmt.Errorf("%d is not greater than 0", weightGrams),
		)
	}
	if weightGrams > MaxWeightGrams {
		return TariffQuote{}, errs.NewValueIsOutOfRangeError("weightGrams", weightGrams, 1, MaxWeightGrams)
	}

	zones, ok := tariffTable()[service]
	if !ok {
		return TariffQuote{}, errs.NewValueIsInvalidErrorWithCause(
			"service",
			fmt.Errorf("%q is not a supported service level", service),
		)
	}

	bands, ok := zones[destination]
	if !ok {
		return TariffQuote{}, errs.NewValueIsInvalidErrorWithCause(
			"destination",
			fmt.Errorf("%q is not a supported destination zone", destination),
		)
	}

	for _, b := range bands {
		if weightGrams <= b.maxGrams {
			return TariffQuote{
				Cost:    kernel.MoneyFromCents(b.rate.costCents),
				Revenue: kernel.MoneyFromCents(b.rate.revenueCents),
			}, nil
		}
	}

	// Unreachable: the last band covers MaxWeightGrams.
	return TariffQuote{}, errs.NewValueIsOutOfRangeError("weightGrams", weightGrams, 1, MaxWeightGrams)
}
