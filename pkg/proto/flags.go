package proto

import (
	"strings"
)

type (
	// Flag bits are serialized with the message and visible to remote
	// peers after decode.
	Flag uint16

	// TransientFlag bits are local only: never serialized, never copied
	// into a duplicate message.
	TransientFlag uint8
)

const (
	FlagOOB Flag = 1 << iota
	FlagDontBundle
	FlagNoFC
	FlagNoRelay
	FlagRSVP
	FlagInternal
	FlagCompressed
	FlagSkipBarrier
)

const (
	FlagOOBDelivered TransientFlag = 1 << iota
	FlagDontLoopback
	FlagDontBlock
)

var (
	flagNames = map[Flag]string{
		FlagOOB:         "OOB",
		FlagDontBundle:  "DONT_BUNDLE",
		FlagNoFC:        "NO_FC",
		FlagNoRelay:     "NO_RELAY",
		FlagRSVP:        "RSVP",
		FlagInternal:    "INTERNAL",
		FlagCompressed:  "COMPRESSED",
		FlagSkipBarrier: "SKIP_BARRIER",
	}
	transientFlagNames = map[TransientFlag]string{
		FlagOOBDelivered: "OOB_DELIVERED",
		FlagDontLoopback: "DONT_LOOPBACK",
		FlagDontBlock:    "DONT_BLOCK",
	}
)

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return "UnknownFlag"
}

func (f TransientFlag) String() string {
	if name, ok := transientFlagNames[f]; ok {
		return name
	}
	return "UnknownTransientFlag"
}

func flagsToString(flags uint16) string {
	if flags == 0 {
		return ""
	}
	var names []string
	for f := Flag(1); f != 0; f <<= 1 {
		if flags&uint16(f) != 0 {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, "|")
}

func transientFlagsToString(flags uint8) string {
	if flags == 0 {
		return ""
	}
	var names []string
	for f := TransientFlag(1); f != 0; f <<= 1 {
		if flags&uint8(f) != 0 {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, "|")
}
