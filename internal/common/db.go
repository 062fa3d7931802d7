package common

import (
	"encoding/json"
	"log"

	"github.com/boltdb/bolt"

	"github.com/trendlink/trendlink/config"
	"github.com/trendlink/trendlink/misc"
)

func LoadContracts(db *bolt.DB, cfg *config.Config) []*Contract {
	var cts []*Contract
	if err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cfg.Bucket.Contract)).ForEach(func(k, v []byte) error {
			ct := &Contract{}
			if err := json.Unmarshal(v, ct); err != nil {
				log.Println("error when unmarshalling contract", string(v))
				return nil
			}
			cts = append(cts, ct)
			return nil
		})
	}); err != nil {
		log.Println("Err loading contracts", err)
	}
	return cts
}

func SaveContract(tx *bolt.Tx, cfg *config.Config, ct *Contract) error {
	if ct == nil || ct.Id == "" {
		return misc.ErrMissingId
	}
	return misc.PutTxJson(tx, cfg.Bucket.Contract, ct.Id, ct)
}

func LoadPayments(db *bolt.DB, cfg *config.Config) []*Payment {
	var pays []*Payment
	if err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cfg.Bucket.Payment)).ForEach(func(k, v []byte) error {
			pay := &Payment{}
			if err := json.Unmarshal(v, pay); err != nil {
				log.Println("error when unmarshalling payment", string(v))
				return nil
			}
			pays = append(pays, pay)
			return nil
		})
	}); err != nil {
		log.Println("Err loading payments", err)
	}
	return pays
}

func SavePayment(tx *bolt.Tx, cfg *config.Config, pay *Payment) error {
	if pay == nil || pay.Id == "" {
		return misc.ErrMissingId
	}
	return misc.PutTxJson(tx, cfg.Bucket.Payment, pay.Id, pay)
}
