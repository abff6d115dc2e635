// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine instantiation, so adapter
// packages can refer to the engine and its middlewares without
// importing the framework package directly.
package gin

import "github.com/gin-gonic/gin"

// HandlerFunc is an alias of the gin-gonic handler function type.
type HandlerFunc = gin.HandlerFunc

// Engine is an alias of the gin-gonic engine type.
type Engine = gin.Engine

// New instantiates a gin-gonic engine with the given middlewares.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}
