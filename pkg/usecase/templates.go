package usecase

// The three release documents. Same data shape for both notes templates;
// the appcast consumes a flat context of its own.

const releaseNotesHTMLTemplate = `<!DOCTYPE HTML PUBLIC "-//IETF//DTD HTML//EN">
<html>
    <body>
        <h1>{{proj_name}} version {{proj_version}}</h1>

        {{#has_issues}}
        <h2>Issues closed</h2>
        <ul>
        {{#issues}}
            <li><a href="{{html_url}}"><b>#{{number}}</b></a> - {{title}}</li>
        {{/issues}}
        </ul>
        {{/has_issues}}

        More information about this release can be found on <a href="{{milestone_url}}">github</a>.
        <br/><br/>
        If you find any bugs please report them on <a href="{{issues_url}}">github</a>.
    </body>
</html>`

const releaseNotesMarkdownTemplate = `{{#has_issues}}
## Issues closed
{{#issues}}
- [#{{number}}]({{html_url}}) - {{title}}
{{/issues}}
{{/has_issues}}

More information about this release can be found on [github]({{milestone_url}}).

If you find any bugs please report them on [github]({{issues_url}}).`

const appcastTemplate = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:sparkle="http://www.andymatuschak.org/xml-namespaces/sparkle" xmlns:dc="http://purl.org/dc/elements/1.1/">
   <channel>
      <title>{{proj_name}} Changelog</title>
      <link>{{proj_appcast_url}}</link>
      <language>en</language>
      <item>
         <title>{{proj_name}} version {{proj_version}}</title>
         <sparkle:releaseNotesLink>
            {{proj_release_notes_url}}
         </sparkle:releaseNotesLink>
         <pubDate>{{date}}</pubDate>
         <enclosure
            url="{{download_url}}"
            sparkle:version="{{proj_version}}"
            length="{{download_size}}"
            type="application/octet-stream"
            sparkle:edSignature="{{download_signature}}" />
         <sparkle:minimumSystemVersion>14.6</sparkle:minimumSystemVersion>
      </item>
   </channel>
</rss>`
