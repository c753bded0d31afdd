package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionStatuses_WorstOrganWins(t *testing.T) {
	statuses := RegionStatuses([]OrganStatus{
		{Organ: OrganLiver, Status: OrganMonitor},
		{Organ: OrganKidneys, Status: OrganCritical},
		{Organ: OrganStomach, Status: OrganGood},
		{Organ: OrganHeart, Status: OrganGood},
	})

	assert.Equal(t, RegionHealth(OrganCritical), statuses[RegionAbdomen])
	assert.Equal(t, RegionHealth(OrganGood), statuses[RegionChest])
	assert.Equal(t, RegionNone, statuses[RegionHead])
}

func TestRegionStatuses_Empty(t *testing.T) {
	statuses := RegionStatuses(nil)

	assert.Len(t, statuses, len(Regions))
	for _, region := range Regions {
		assert.Equal(t, RegionNone, statuses[region])
	}
}

func TestRegionOrgans_ReturnsCopy(t *testing.T) {
	organs := RegionOrgans(RegionHead)
	assert.Equal(t, []Organ{OrganBrain, OrganThyroid}, organs)

	organs[0] = OrganLiver
	assert.Equal(t, OrganBrain, RegionOrgans(RegionHead)[0])
}

func TestRegions_CoverEveryOrganOnce(t *testing.T) {
	seen := map[Organ]int{}
	for _, region := range Regions {
		for _, organ := range RegionOrgans(region) {
			seen[organ]++
		}
	}
	for _, organ := range Organs {
		assert.Equal(t, 1, seen[organ], "organ %s", organ)
	}
}
