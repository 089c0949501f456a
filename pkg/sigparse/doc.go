// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sigparse parses single-line, Java-like method signatures.
//
// # Grammar
//
// The accepted shape is fixed:
//
//	signature := [modifier " "] returnType " " name "(" [args] ")"
//	args      := arg ("," arg)*
//	arg       := argType " " argName
//
// Every element is a whitespace-free token. Surrounding whitespace is
// tolerated. Generics, annotations, varargs, default values and multi-word
// types ("unsigned long") are not part of the grammar.
//
// # Usage
//
//	sig, err := sigparse.Parse("private void log(String value)")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sig.AccessModifier, sig.ReturnType, sig.MethodName)
//	// private void log
//
// # Errors
//
// Every rejection is a *MalformedSignatureError, which matches
// ErrMalformedSignature:
//
//	if _, err := sigparse.Parse("void run(int)"); errors.Is(err, sigparse.ErrMalformedSignature) {
//	    me, _ := sigparse.AsMalformed(err)
//	    fmt.Println(me.Stage) // argument
//	}
//
// Parse never returns partial results and is safe for concurrent use.
package sigparse
