package cosign

// Signable carries the FCL signing request. Only the fields the
// verification path reads are mapped; the rest of the interaction
// envelope is ignored.
type Signable struct {
	Addr    string `json:"addr"`
	Cadence string `json:"cadence"`
	FType   string `json:"f_type"`
	FVsn    string `json:"f_vsn"`
	KeyID   int    `json:"keyId"`
	Message string `json:"message"`
	Roles   struct {
		Authorizer bool `json:"authorizer"`
		Param      bool `json:"param"`
		Payer      bool `json:"payer"`
		Proposer   bool `json:"proposer"`
	} `json:"roles"`
}
