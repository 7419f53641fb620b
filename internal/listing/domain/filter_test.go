package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleListings() []*Listing {
	return []*Listing{
		{
			ID: "1", Name: "Tesla Model 3", Price: 35000, Engine: EngineElectric,
			EngineSize: 0, Mileage: 5000, Transmission: TransmissionAutomatic,
			Color: "Blue", Year: 2022, Location: "Berlin",
		},
		{
			ID: "2", Name: "Volvo XC60", Price: 42000, Engine: EngineDiesel,
			EngineSize: 2.0, Mileage: 80000, Transmission: TransmissionAutomatic,
			Color: "Black", Year: 2019, Location: "Stockholm",
		},
		{
			ID: "3", Name: "Honda CB500F", Price: 6500, Engine: EnginePetrol,
			EngineSize: 0.5, Mileage: 12000, Transmission: TransmissionManual,
			Color: "Red", Year: 2021, Location: "Athens",
		},
	}
}

func TestFilter_IdentitySpecReturnsInputUnchanged(t *testing.T) {
	listings := sampleListings()
	got := Filter(listings, NewFilterSpec())

	require.Len(t, got, len(listings))
	for i := range listings {
		assert.Same(t, listings[i], got[i])
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, NewFilterSpec())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_IsStableSubsequence(t *testing.T) {
	listings := sampleListings()
	spec := NewFilterSpec()
	spec.Transmission = TransmissionAutomatic

	got := Filter(listings, spec)

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	listings := []*Listing{{ID: "1", Name: "Volvo"}}

	for _, term := range []string{"volvo", "VOLVO", "Volvo", "olv"} {
		t.Run(term, func(t *testing.T) {
			spec := NewFilterSpec()
			spec.Search = term
			assert.Len(t, Filter(listings, spec), 1)
		})
	}

	spec := NewFilterSpec()
	spec.Search = "tesla"
	assert.Empty(t, Filter(listings, spec))
}

func TestFilter_LocationIsCaseInsensitiveSubstring(t *testing.T) {
	listings := sampleListings()
	spec := NewFilterSpec()
	spec.Location = "berl"

	got := Filter(listings, spec)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_EngineAndPriceRangeScenario(t *testing.T) {
	listings := sampleListings()[:1]

	spec := NewFilterSpec()
	spec.Engine = EngineElectric
	spec.PriceMin = 30000
	spec.PriceMax = 40000

	got := Filter(listings, spec)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	spec.Engine = EngineDiesel
	assert.Empty(t, Filter(listings, spec))
}

func TestFilter_InvertedRangesMatchNothing(t *testing.T) {
	listings := sampleListings()

	t.Run("price", func(t *testing.T) {
		spec := NewFilterSpec()
		spec.PriceMin = 50000
		spec.PriceMax = 10000
		assert.Empty(t, Filter(listings, spec))
	})

	t.Run("mileage", func(t *testing.T) {
		spec := NewFilterSpec()
		spec.MileageMin = 100000
		spec.MileageMax = 1
		assert.Empty(t, Filter(listings, spec))
	})

	t.Run("engine size", func(t *testing.T) {
		spec := NewFilterSpec()
		spec.EngineSizeMin = 8.0
		spec.EngineSizeMax = 1.0
		assert.Empty(t, Filter(listings, spec))
	})
}

func TestFilter_ExactYearMatch(t *testing.T) {
	listings := sampleListings()

	spec := NewFilterSpec()
	spec.Year = 2019

	got := Filter(listings, spec)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	spec.Year = 1999
	assert.Empty(t, Filter(listings, spec))
}

func TestFilter_ColorExactMatch(t *testing.T) {
	listings := sampleListings()

	spec := NewFilterSpec()
	spec.Color = "Red"

	got := Filter(listings, spec)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestFilter_PredicatesCompose(t *testing.T) {
	listings := sampleListings()

	spec := NewFilterSpec()
	spec.Transmission = TransmissionAutomatic
	spec.Engine = EngineDiesel
	spec.MileageMin = 50000

	got := Filter(listings, spec)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}
