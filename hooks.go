package envnode

import "go.uber.org/zap"

// Hooks receive diagnostics that the node does not surface to its caller.  key is the file path
// for file failures and the variable name for backing failures.
type Hooks struct {
	OnError func(msg string, key string, err error)
}

func (h Hooks) onError(msg string, key string, err error) {
	if h.OnError != nil {
		h.OnError(msg, key, err)
		return
	}
	zap.L().Warn(msg, zap.String("key", key), zap.Error(err))
}

// ZapHooks logs every diagnostic to logger at warn level
func ZapHooks(logger *zap.Logger) Hooks {
	return Hooks{
		OnError: func(msg string, key string, err error) {
			logger.Warn(msg, zap.String("key", key), zap.Error(err))
		},
	}
}
