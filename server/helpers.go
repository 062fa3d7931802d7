package server

import (
	"github.com/boltdb/bolt"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
)

// Mutations happen in memory first; these write the affected entities back
// inside a single bolt transaction.

func (srv *Server) saveUsers(profiles ...auth.Profile) error {
	return srv.db.Update(func(tx *bolt.Tx) error {
		for _, p := range profiles {
			if p == nil {
				continue
			}
			if err := auth.SaveUser(tx, srv.Cfg, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (srv *Server) saveCampaign(cmp *common.Campaign, profiles ...auth.Profile) error {
	return srv.db.Update(func(tx *bolt.Tx) error {
		if err := common.SaveCampaign(tx, srv.Cfg, cmp); err != nil {
			return err
		}
		for _, p := range profiles {
			if p == nil {
				continue
			}
			if err := auth.SaveUser(tx, srv.Cfg, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (srv *Server) saveContract(ct *common.Contract) error {
	return srv.db.Update(func(tx *bolt.Tx) error {
		return common.SaveContract(tx, srv.Cfg, ct)
	})
}

func (srv *Server) savePayment(pay *common.Payment, profiles ...auth.Profile) error {
	return srv.db.Update(func(tx *bolt.Tx) error {
		if err := common.SavePayment(tx, srv.Cfg, pay); err != nil {
			return err
		}
		for _, p := range profiles {
			if p == nil {
				continue
			}
			if err := auth.SaveUser(tx, srv.Cfg, p); err != nil {
				return err
			}
		}
		return nil
	})
}
