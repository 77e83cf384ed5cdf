package protocol

import (
	"fmt"
	"strconv"
)

type Option interface {
	Name() string
	String() string
	Set(s string) error
}

type BoolOption struct {
	Key   string
	Value *bool
}

func (opt *BoolOption) Name() string {
	return opt.Key
}

func (opt *BoolOption) String() string {
	return fmt.Sprintf("option name %v type check default %v", opt.Key, *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("option %v: %w", opt.Key, err)
	}
	*opt.Value = v
	return nil
}

type IntOption struct {
	Key   string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) Name() string {
	return opt.Key
}

func (opt *IntOption) String() string {
	return fmt.Sprintf("option name %v type spin default %v min %v max %v",
		opt.Key, *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("option %v: %w", opt.Key, err)
	}
	if v < opt.Min || v > opt.Max {
		return fmt.Errorf("option %v: %v out of range [%v, %v]", opt.Key, v, opt.Min, opt.Max)
	}
	*opt.Value = v
	return nil
}
