package auth

type Scope string

const (
	InvalidScope    Scope = ""
	AdminScope      Scope = `admin`
	AdvertiserScope Scope = `advertiser`
	BrandScope      Scope = `brand`
	InfluencerScope Scope = `influencer`
)

func (s Scope) Valid() bool {
	switch s {
	case AdminScope, AdvertiserScope, BrandScope, InfluencerScope:
		return true
	}
	return false
}

// CanManage returns true if the current scope can operate on entities owned
// by the child scope.
func (s Scope) CanManage(child Scope) bool {
	switch s {
	case AdminScope:
		return true
	case AdvertiserScope:
		return child == BrandScope
	}
	return false
}
