package redis

import "errors"

var errNoPrefix = errors.New("redis cache: refusing to clear without a key prefix")
