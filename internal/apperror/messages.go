package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Wallet
	CodeNoWalletConnected:     "No wallet connected",
	CodeWalletConnectFailed:   "Failed to connect to wallet",
	CodeWalletDisconnectError: "Failed to disconnect from wallet",
	CodeSigningFailed:         "Wallet refused to sign the transaction",
	CodeUnknownProvider:       "Unknown wallet provider",
	CodeStorageCorrupt:        "Stored session data is corrupt",

	// Chainweb RPC
	CodeChainwebRequestFailed: "Chainweb request failed",
	CodeSimulationFailed:      "Transaction simulation failed",
	CodeBroadcastFailed:       "Transaction broadcast failed",
	CodeConfirmationFailed:    "Transaction failed on chain",
	CodeEmptyRequestKeys:      "Broadcast returned no request keys",
	CodePactDecodeFailed:      "Failed to decode Pact result",

	// Sale
	CodeCollectionLoadFailed: "Failed to load collection data",
	CodeAccountLoadFailed:    "Failed to load account data",
	CodeInvalidMintAmount:    "Invalid mint amount",
	CodeTierNotActive:        "No sale tier is currently active",
	CodeNotWhitelisted:       "Account is not whitelisted for this tier",

	// Circuit breaker
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
