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

// Package apis defines the small Go-level contracts shared by the apperr
// packages.
//
// Transport adapters (HTTP, gRPC), the reporting layer and the join adapter
// target these interfaces and view types instead of importing each other.
// The package must stay lightweight: interfaces and plain structs only.
package apis
