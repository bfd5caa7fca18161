package models

// Field names one of the three persisted credential values.
type Field string

const (
	FieldNetworkName   Field = "ssid"
	FieldPassphrase    Field = "pass"
	FieldStaticAddress Field = "ip"
)

// Fields lists the credential fields in the order they are loaded and saved.
var Fields = []Field{FieldNetworkName, FieldPassphrase, FieldStaticAddress}

// Credentials are the network settings the device joins with.
// Every field may be empty; see Usable.
type Credentials struct {
	NetworkName   string `json:"ssid"`
	Passphrase    string `json:"-"`
	StaticAddress string `json:"ip"`
}

// Usable reports whether a connection attempt makes sense. An empty
// passphrase is fine (open network).
func (c Credentials) Usable() bool {
	return c.NetworkName != "" && c.StaticAddress != ""
}

// Get returns the value of the given field.
func (c Credentials) Get(f Field) string {
	switch f {
	case FieldNetworkName:
		return c.NetworkName
	case FieldPassphrase:
		return c.Passphrase
	case FieldStaticAddress:
		return c.StaticAddress
	}
	return ""
}

// Set assigns the value of the given field.
func (c *Credentials) Set(f Field, v string) {
	switch f {
	case FieldNetworkName:
		c.NetworkName = v
	case FieldPassphrase:
		c.Passphrase = v
	case FieldStaticAddress:
		c.StaticAddress = v
	}
}
