package model

import "errors"

var ErrDNSRecordNotFound = errors.New("dns record not found")

type DNSRecordType string

const (
	DNSRecordA     = DNSRecordType("A")
	DNSRecordCNAME = DNSRecordType("CNAME")
	DNSRecordTXT   = DNSRecordType("TXT")
)

type DNSRecord struct {
	Type DNSRecordType `json:"type,omitempty"`
	Name string        `json:"name,omitempty"`
	Data string        `json:"data"`
	TTL  int           `json:"ttl,omitempty"`
}

type DNSAction string

const (
	DNSActionCreated = DNSAction("created")
	DNSActionUpdated = DNSAction("updated")
)
