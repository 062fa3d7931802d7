package auth

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/trendlink/trendlink/config"
	"github.com/trendlink/trendlink/misc"
)

// SignIn validates credentials against the registry and stamps the login
// time on success.
func SignIn(users *Users, username, password string) (Profile, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCreds
	}
	p := users.Get(username)
	if p == nil {
		return nil, ErrUserNotFound
	}
	base := p.Base()
	if !base.Active {
		return nil, ErrInactiveUser
	}
	if !CheckPassword(base.Password, password) {
		return nil, ErrInvalidPass
	}
	base.StampLogin()
	return p, nil
}

// userRecord is the stored envelope: the role tag tells the loader which
// concrete type to unmarshal into.
type userRecord struct {
	Type Scope           `json:"type"`
	Data json.RawMessage `json:"data"`
}

func encodeUser(p Profile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&userRecord{Type: p.Scope(), Data: data})
}

func decodeUser(b []byte) (Profile, error) {
	var rec userRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	var p Profile
	switch rec.Type {
	case AdminScope:
		p = &Admin{}
	case AdvertiserScope:
		p = &Advertiser{}
	case BrandScope:
		p = &Brand{}
	case InfluencerScope:
		p = &Influencer{}
	default:
		return nil, ErrInvalidUserType
	}
	if err := json.Unmarshal(rec.Data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveUser writes a profile inside an open transaction.
func SaveUser(tx *bolt.Tx, cfg *config.Config, p Profile) error {
	b, err := encodeUser(p)
	if err != nil {
		return err
	}
	return misc.PutBucketBytes(tx, cfg.Bucket.User, p.Key(), b)
}

func DeleteUser(tx *bolt.Tx, cfg *config.Config, username string) error {
	return misc.DelBucketBytes(tx, cfg.Bucket.User, username)
}

// LoadUsers reads every stored profile into a fresh registry.
func LoadUsers(db *bolt.DB, cfg *config.Config) (*Users, error) {
	users := NewUsers()
	var profiles []Profile
	err := db.View(func(tx *bolt.Tx) error {
		return misc.GetBucket(tx, cfg.Bucket.User).ForEach(func(k, v []byte) error {
			p, err := decodeUser(v)
			if err != nil {
				return fmt.Errorf("user %s: %w", k, misc.ErrDataProcessing)
			}
			profiles = append(profiles, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if err := users.SetAll(profiles); err != nil {
		return nil, err
	}
	return users, nil
}
