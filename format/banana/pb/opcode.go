package pb

import (
	"fmt"

	"github.com/eluv-io/errors-go"
)

// Opcode is a Perspective Broker token. It is encoded as a single preamble byte (the opcode number) followed by
// the PB delimiter 0x87.
type Opcode uint8

const (
	None Opcode = iota + 1
	Class
	DeReference
	Reference
	Dictionary
	Function
	Instance
	List
	Module
	Persistent
	Tuple
	UnPersistable
	Copy
	Cache
	Cached
	Remote
	Local
	LCache
	Version
	Login
	Password
	Challenge
	LoggedIn
	NotLoggedIn
	CacheMessage
	Message
	Answer
	Error
	DecRef
	DeCache
	UnCache
)

// MinOpcode and MaxOpcode delimit the range of valid opcodes.
const (
	MinOpcode = None
	MaxOpcode = UnCache
)

var opcodeToName = map[Opcode]string{
	None:          "None",
	Class:         "Class",
	DeReference:   "DeReference",
	Reference:     "Reference",
	Dictionary:    "Dictionary",
	Function:      "Function",
	Instance:      "Instance",
	List:          "List",
	Module:        "Module",
	Persistent:    "Persistent",
	Tuple:         "Tuple",
	UnPersistable: "UnPersistable",
	Copy:          "Copy",
	Cache:         "Cache",
	Cached:        "Cached",
	Remote:        "Remote",
	Local:         "Local",
	LCache:        "LCache",
	Version:       "Version",
	Login:         "Login",
	Password:      "Password",
	Challenge:     "Challenge",
	LoggedIn:      "LoggedIn",
	NotLoggedIn:   "NotLoggedIn",
	CacheMessage:  "CacheMessage",
	Message:       "Message",
	Answer:        "Answer",
	Error:         "Error",
	DecRef:        "DecRef",
	DeCache:       "DeCache",
	UnCache:       "UnCache",
}

var nameToOpcode = map[string]Opcode{}

func init() {
	for op, name := range opcodeToName {
		nameToOpcode[name] = op
	}
}

// Opcodes returns all opcodes in ascending order.
func Opcodes() []Opcode {
	res := make([]Opcode, 0, MaxOpcode)
	for op := MinOpcode; op <= MaxOpcode; op++ {
		res = append(res, op)
	}
	return res
}

// IsValid returns true if op is a known opcode.
func (op Opcode) IsValid() bool {
	return op >= MinOpcode && op <= MaxOpcode
}

func (op Opcode) String() string {
	if name, ok := opcodeToName[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
}

// AppendBanana appends the wire representation of the opcode: the opcode number and the PB delimiter.
func (op Opcode) AppendBanana(buf []byte) []byte {
	return append(buf, byte(op), Delimiter)
}

// EncodedLen returns the wire size of a PB token.
func (op Opcode) EncodedLen() int {
	return tokenSize
}

// ParseOpcode returns the opcode with the given name.
func ParseOpcode(name string) (Opcode, error) {
	op, ok := nameToOpcode[name]
	if !ok {
		return 0, errors.E("pb.ParseOpcode", errors.K.Invalid, "reason", "unknown opcode", "name", name)
	}
	return op, nil
}

// MarshalText implements custom marshaling using the opcode name.
func (op Opcode) MarshalText() ([]byte, error) {
	if !op.IsValid() {
		return nil, errors.E("pb.Opcode.MarshalText", errors.K.Invalid, "reason", "unknown opcode", "opcode", uint8(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements custom unmarshaling from the opcode name.
func (op *Opcode) UnmarshalText(text []byte) error {
	parsed, err := ParseOpcode(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}
