package kromer

// Address is a wallet address record.
type Address struct {
	Address   string  `json:"address"`
	Balance   float64 `json:"balance"`
	TotalIn   float64 `json:"totalin"`
	TotalOut  float64 `json:"totalout"`
	FirstSeen string  `json:"firstseen"`
}

// Transaction is one ledger transaction.
type Transaction struct {
	ID       int64   `json:"id"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Value    float64 `json:"value"`
	Time     string  `json:"time"`
	Type     string  `json:"type"`
	Metadata string  `json:"metadata"`
}

// Name is a registered wallet name.
type Name struct {
	Name          string `json:"name"`
	Owner         string `json:"owner"`
	OriginalOwner string `json:"original_owner"`
	Registered    string `json:"registered"`
	Updated       string `json:"updated"`
}

// envelope is the response wrapper every route returns. Failures carry
// ok=false with a machine error code and an optional human message.
type envelope struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`

	Address      *Address      `json:"address"`
	Transaction  *Transaction  `json:"transaction"`
	Transactions []Transaction `json:"transactions"`
	Names        []Name        `json:"names"`
	Total        int           `json:"total"`
}

// loginEnvelope is the response of the login route, where "address" is a
// plain string rather than an address record.
type loginEnvelope struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Authed  bool   `json:"authed"`
	Address string `json:"address"`
}
