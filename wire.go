//go:build wireinject

package uringtree

import (
	"github.com/google/wire"
)

func InitTreeCLI(args *Args, streams *Streams) (*TreeCLI, func(), error) {
	panic(wire.Build(Wires))
}
