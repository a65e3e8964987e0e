package learners

import (
	"errors"
)

var (
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrTargetLenMismatch  = errors.New("target length does not match training rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match the trained tree")
	ErrUntrainedTree      = errors.New("tree has not been trained yet")
	ErrNegativeDepth      = errors.New("negative max depth")
	ErrMinSamplesSplit    = errors.New("min samples split must be at least 2")
	ErrNoModelNodes       = errors.New("no nodes in tree model")
	ErrBadModelNodeRef    = errors.New("tree model node reference out of range")
)
