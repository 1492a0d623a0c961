package token

import gotoken "go/token"

// Position identifies a line in a program source file. Definitions are one
// per line (§4.A, §6), so a line number is sufficient to pinpoint any
// ParseError. CodecError locations are reported separately, as a bit offset
// in lang/codec.Error.
type Position = gotoken.Position
