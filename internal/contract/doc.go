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

// Package contract holds input limits applied before signatures reach the
// parser.
//
// # Signature Limits
//
// Signatures longer than the size limit, or containing line breaks, are
// rejected without being parsed:
//
//	result := contract.ValidateSignature(text, 0)
//	if !result.OK {
//	    log.Printf("rejected: %s", result.Message)
//	}
//
// # Configuration via Environment
//
// The size limit defaults to 4096 bytes (DefaultMaxSignatureBytes) and can be
// raised or lowered with METHODSIG_MAX_SIGNATURE_BYTES:
//
//	export METHODSIG_MAX_SIGNATURE_BYTES=8192
//
// Invalid or non-positive values fall back to the default.
package contract
