/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package adapter projects *apperr.Error values into the portable shapes of
// package apis and back.
//
// ToView and ToDescriptor feed transports and structured logs. Metadata and
// FromMetadata carry an error across a string-keyed boundary (gRPC
// ErrorInfo metadata, message headers) such that the rebuilt value renders
// the same message as the original.
package adapter
