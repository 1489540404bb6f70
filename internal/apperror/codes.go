package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Wallet error codes
const (
	CodeNoWalletConnected     Code = "NO_WALLET_CONNECTED"
	CodeWalletConnectFailed   Code = "WALLET_CONNECT_FAILED"
	CodeWalletDisconnectError Code = "WALLET_DISCONNECT_ERROR"
	CodeSigningFailed         Code = "SIGNING_FAILED"
	CodeUnknownProvider       Code = "UNKNOWN_PROVIDER"
	CodeStorageCorrupt        Code = "STORAGE_CORRUPT"
)

// Chainweb RPC error codes
const (
	CodeChainwebRequestFailed Code = "CHAINWEB_REQUEST_FAILED"
	CodeSimulationFailed      Code = "SIMULATION_FAILED"
	CodeBroadcastFailed       Code = "BROADCAST_FAILED"
	CodeConfirmationFailed    Code = "CONFIRMATION_FAILED"
	CodeEmptyRequestKeys      Code = "EMPTY_REQUEST_KEYS"
	CodePactDecodeFailed      Code = "PACT_DECODE_FAILED"
)

// Sale error codes
const (
	CodeCollectionLoadFailed Code = "COLLECTION_LOAD_FAILED"
	CodeAccountLoadFailed    Code = "ACCOUNT_LOAD_FAILED"
	CodeInvalidMintAmount    Code = "INVALID_MINT_AMOUNT"
	CodeTierNotActive        Code = "TIER_NOT_ACTIVE"
	CodeNotWhitelisted       Code = "NOT_WHITELISTED"
)

// Circuit breaker error codes
const (
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
