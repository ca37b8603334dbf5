package types

// ContractVersion is the request/response contract version this client
// is built against. Every upstream response must carry the same value
// in its X-Contract-Version header; a mismatch is a configuration
// error, not something to ignore.
const ContractVersion = "1.0.0"

// ContractVersionHeader is the HTTP header carrying the contract
// version marker.
const ContractVersionHeader = "X-Contract-Version"
