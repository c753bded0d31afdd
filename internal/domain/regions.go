package domain

// Region is a coarse body area shown on the body map.
type Region string

const (
	RegionHead    Region = "head"
	RegionChest   Region = "chest"
	RegionAbdomen Region = "abdomen"
)

// RegionHealth is the aggregated status of a region. RegionNone means the
// report has no finding for any organ in the region.
type RegionHealth string

const RegionNone RegionHealth = "none"

// Regions lists body regions in display order.
var Regions = []Region{RegionHead, RegionChest, RegionAbdomen}

var regionOrgans = map[Region][]Organ{
	RegionHead:    {OrganBrain, OrganThyroid},
	RegionChest:   {OrganHeart, OrganLungs},
	RegionAbdomen: {OrganStomach, OrganLiver, OrganPancreas, OrganKidneys, OrganIntestine},
}

// critical > attention > monitor > good
var organSeverity = map[OrganHealth]int{
	OrganGood:      1,
	OrganMonitor:   2,
	OrganAttention: 3,
	OrganCritical:  4,
}

// RegionOrgans returns the organs drawn inside a region.
func RegionOrgans(region Region) []Organ {
	return append([]Organ(nil), regionOrgans[region]...)
}

// RegionStatuses projects the organ map onto body regions, taking the worst
// organ status in each region.
func RegionStatuses(organMap []OrganStatus) map[Region]RegionHealth {
	byOrgan := make(map[Organ]OrganHealth, len(organMap))
	for _, o := range organMap {
		byOrgan[o.Organ] = o.Status
	}

	out := make(map[Region]RegionHealth, len(Regions))
	for _, region := range Regions {
		worst := RegionNone
		rank := 0
		for _, organ := range regionOrgans[region] {
			status, ok := byOrgan[organ]
			if !ok {
				continue
			}
			if r := organSeverity[status]; r > rank {
				rank = r
				worst = RegionHealth(status)
			}
		}
		out[region] = worst
	}
	return out
}
