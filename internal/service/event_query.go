package service

import (
	"fmt"
	"net/url"

	"scheduler/internal/errors"
	"scheduler/internal/model"
	"scheduler/internal/repository"
)

// Query parameters understood by BuildEventFilter.
const (
	ParamUserID      = "userId"
	ParamDate        = "date"
	ParamIntervalGTE = "interval[gte]"
	ParamIntervalLTE = "interval[lte]"
	ParamGTE         = "gte"
	ParamLTE         = "lte"
)

// BuildEventFilter turns list query parameters into a single filter.
// The first recognized parameter wins, in this order: userId, date,
// interval (both bounds), gte, lte. Filters are never combined.
func BuildEventFilter(params url.Values) (repository.EventFilter, error) {
	if len(params) == 0 {
		return repository.EventFilter{Kind: repository.FilterAll}, nil
	}

	if params.Has(ParamUserID) {
		userID := params.Get(ParamUserID)
		if !model.IsValidID(userID) {
			return repository.EventFilter{}, badQuery("userId %q", userID)
		}
		return repository.EventFilter{Kind: repository.FilterByUser, UserID: userID}, nil
	}

	if params.Has(ParamDate) {
		date, err := ParseDate(params.Get(ParamDate))
		if err != nil {
			return repository.EventFilter{}, badQuery("date: %v", err)
		}
		return repository.EventFilter{Kind: repository.FilterByDate, Date: date}, nil
	}

	hasGTE, hasLTE := params.Has(ParamIntervalGTE), params.Has(ParamIntervalLTE)
	if hasGTE || hasLTE {
		if !hasGTE || !hasLTE {
			return repository.EventFilter{}, badQuery("interval needs both gte and lte")
		}
		from, err := ParseDate(params.Get(ParamIntervalGTE))
		if err != nil {
			return repository.EventFilter{}, badQuery("interval gte: %v", err)
		}
		until, err := ParseDate(params.Get(ParamIntervalLTE))
		if err != nil {
			return repository.EventFilter{}, badQuery("interval lte: %v", err)
		}
		return repository.EventFilter{Kind: repository.FilterByInterval, From: from, Until: until}, nil
	}

	if params.Has(ParamGTE) {
		from, err := ParseDate(params.Get(ParamGTE))
		if err != nil {
			return repository.EventFilter{}, badQuery("gte: %v", err)
		}
		return repository.EventFilter{Kind: repository.FilterFrom, From: from}, nil
	}

	if params.Has(ParamLTE) {
		until, err := ParseDate(params.Get(ParamLTE))
		if err != nil {
			return repository.EventFilter{}, badQuery("lte: %v", err)
		}
		return repository.EventFilter{Kind: repository.FilterUntil, Until: until}, nil
	}

	return repository.EventFilter{}, badQuery("no recognized parameter")
}

func badQuery(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errors.ErrSomethingWentWrong, fmt.Sprintf(format, args...))
}
